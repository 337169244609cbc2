package analytics

import "strings"

// Category groups.
const (
	GroupDrinks   = "Drinks"
	GroupDesserts = "Desserts"
	GroupSides    = "Starters & Sides"
	GroupKids     = "Kids"
	GroupAYCE     = "AYCE"
	GroupAddons   = "Add-ons"
	GroupMains    = "Mains"
	GroupOther    = "Other"
)

type groupRule struct {
	group    string
	keywords []string
}

// groupRules is evaluated top to bottom; the first rule with a keyword
// contained in the lowercased category wins. Order is significant.
var groupRules = []groupRule{
	{GroupDrinks, []string{"coffee", "tea", "juice", "smoothie", "mocktail", "drinks", "fresh juices"}},
	{GroupDesserts, []string{"dessert", "pastry", "cake", "viennoserie"}},
	{GroupSides, []string{"starter", "soup", "appetizer", "sides", "fries"}},
	{GroupKids, []string{"kids", "kid's"}},
	{GroupAYCE, []string{"ayce", "all-you-can"}},
	{GroupAddons, []string{"add-on", "addon", "add on"}},
	{GroupMains, []string{"breakfast", "main", "sandwich", "salad", "bowl", "burger", "fit fuel", "combo", "special"}},
}

// GroupOf maps a free-text category to its coarse group.
func GroupOf(category string) string {
	cat := strings.ToLower(category)
	for _, rule := range groupRules {
		for _, kw := range rule.keywords {
			if strings.Contains(cat, kw) {
				return rule.group
			}
		}
	}
	return GroupOther
}
