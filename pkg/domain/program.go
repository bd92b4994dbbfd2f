package domain

// BillingCycle selects one of the two precomputed price tiers of a program.
type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
)

// Program is one enrollment program from the static pricing table. Prices
// are whole rupees. Savings is the marketing-declared quarterly saving; it is
// displayed as-is and never recomputed from the monthly price — the quarterly
// tier bundles physical learning materials, so the arithmetic difference is
// not the advertised figure.
type Program struct {
	ID        string
	Name      string
	AgeRange  AgeGroup
	Monthly   int
	Quarterly int
	Savings   int
	Currency  string
	Features  []string
}

// Price returns the tier price for the given billing cycle.
func (p Program) Price(cycle BillingCycle) int {
	if cycle == CycleQuarterly {
		return p.Quarterly
	}
	return p.Monthly
}

// Programs is the static enrollment program table. It mirrors the pricing
// table the backend validates against; no round-trip is needed to display it.
var Programs = []Program{
	{
		ID: "foundation", Name: "Foundation", AgeRange: AgeFoundation,
		Monthly: 800, Quarterly: 2800, Savings: 360, Currency: "LKR",
		Features: []string{"AI basics", "Simple logic", "Creative play", "Progress tracking"},
	},
	{
		ID: "explorers", Name: "Explorers", AgeRange: AgeDevelopment,
		Monthly: 1200, Quarterly: 4200, Savings: 540, Currency: "LKR",
		Features: []string{"Logical reasoning", "AI applications", "Design thinking"},
	},
	{
		ID: "smart", Name: "Smart Thinkers", AgeRange: AgeDevelopment,
		Monthly: 1500, Quarterly: 5250, Savings: 675, Currency: "LKR",
		Features: []string{"Complex problems", "Systems understanding", "Project kits"},
	},
	{
		ID: "teens", Name: "Future Teens", AgeRange: AgeMastery,
		Monthly: 2000, Quarterly: 7000, Savings: 900, Currency: "LKR",
		Features: []string{"Advanced AI", "Innovation methods", "Career guidance"},
	},
	{
		ID: "leaders", Name: "Young Leaders", AgeRange: AgeMastery,
		Monthly: 2500, Quarterly: 8750, Savings: 1125, Currency: "LKR",
		Features: []string{"Leadership skills", "Entrepreneurship", "Future careers"},
	},
}

// ProgramByID looks up a program in the static table.
func ProgramByID(id string) (Program, bool) {
	for _, p := range Programs {
		if p.ID == id {
			return p, true
		}
	}
	return Program{}, false
}
