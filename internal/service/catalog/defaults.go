package catalog

import "teapos/internal/domain"

// Built-in catalog served when the database is unreachable or returns
// unusable data. cmd/seed writes the same set into Postgres.

var defaultCategories = []domain.Category{
	{ID: "660e8400-e29b-41d4-a716-446655440001", Name: "Black Tea Series"},
	{ID: "660e8400-e29b-41d4-a716-446655440002", Name: "Oolong Tea Series"},
	{ID: "660e8400-e29b-41d4-a716-446655440003", Name: "Green Tea Series"},
	{ID: "660e8400-e29b-41d4-a716-446655440004", Name: "Matcha Series"},
	{ID: "660e8400-e29b-41d4-a716-446655440005", Name: "Taro Series"},
	{ID: "660e8400-e29b-41d4-a716-446655440006", Name: "Wintermelon Series"},
	{ID: "660e8400-e29b-41d4-a716-446655440007", Name: "Caffeine-free Series"},
	{ID: "660e8400-e29b-41d4-a716-446655440008", Name: "Coffee Series"},
}

var defaultMenuItems = []domain.MenuItem{
	{ID: "770e8400-e29b-41d4-a716-446655440001", Name: "Fragrant Black Tea", PriceCents: 1200, ImageURL: "black-tea", CategoryID: "660e8400-e29b-41d4-a716-446655440001"},
	{ID: "770e8400-e29b-41d4-a716-446655440002", Name: "Brown Sugar Pearl Milk Tea", PriceCents: 1800, ImageURL: "brown-sugar-pearl", CategoryID: "660e8400-e29b-41d4-a716-446655440001"},
	{ID: "770e8400-e29b-41d4-a716-446655440003", Name: "Iced Lemon Tea", PriceCents: 1500, ImageURL: "iced-lemon-tea", CategoryID: "660e8400-e29b-41d4-a716-446655440001"},
	{ID: "770e8400-e29b-41d4-a716-446655440004", Name: "Black Tea Latte", PriceCents: 1600, ImageURL: "black-tea-latte", CategoryID: "660e8400-e29b-41d4-a716-446655440001"},
	{ID: "770e8400-e29b-41d4-a716-446655440005", Name: "Oolong Tea Latte", PriceCents: 1700, ImageURL: "oolong-latte", CategoryID: "660e8400-e29b-41d4-a716-446655440002"},
	{ID: "770e8400-e29b-41d4-a716-446655440006", Name: "Oolong Tea", PriceCents: 1300, ImageURL: "oolong-tea", CategoryID: "660e8400-e29b-41d4-a716-446655440002"},
	{ID: "770e8400-e29b-41d4-a716-446655440007", Name: "Pomegranate Green Tea", PriceCents: 1600, ImageURL: "pomegranate-green", CategoryID: "660e8400-e29b-41d4-a716-446655440003"},
	{ID: "770e8400-e29b-41d4-a716-446655440008", Name: "Passionfruit Green Tea", PriceCents: 1600, ImageURL: "passionfruit-green", CategoryID: "660e8400-e29b-41d4-a716-446655440003"},
	{ID: "770e8400-e29b-41d4-a716-446655440009", Name: "Green Milk Tea", PriceCents: 1500, ImageURL: "green-milk-tea", CategoryID: "660e8400-e29b-41d4-a716-446655440003"},
	{ID: "770e8400-e29b-41d4-a716-446655440010", Name: "Green Tea Latte", PriceCents: 1700, ImageURL: "green-tea-latte", CategoryID: "660e8400-e29b-41d4-a716-446655440003"},
	{ID: "770e8400-e29b-41d4-a716-446655440011", Name: "Green Tea", PriceCents: 1200, ImageURL: "green-tea", CategoryID: "660e8400-e29b-41d4-a716-446655440003"},
	{ID: "770e8400-e29b-41d4-a716-446655440012", Name: "Matcha Milk Tea", PriceCents: 1900, ImageURL: "matcha-milk", CategoryID: "660e8400-e29b-41d4-a716-446655440004"},
	{ID: "770e8400-e29b-41d4-a716-446655440013", Name: "Matcha Tea", PriceCents: 1500, ImageURL: "matcha-tea", CategoryID: "660e8400-e29b-41d4-a716-446655440004"},
	{ID: "770e8400-e29b-41d4-a716-446655440014", Name: "Matcha Latte", PriceCents: 1800, ImageURL: "matcha-latte", CategoryID: "660e8400-e29b-41d4-a716-446655440004"},
	{ID: "770e8400-e29b-41d4-a716-446655440015", Name: "Da Jia", PriceCents: 2000, ImageURL: "da-jia", CategoryID: "660e8400-e29b-41d4-a716-446655440005"},
	{ID: "770e8400-e29b-41d4-a716-446655440016", Name: "Angel Summer", PriceCents: 2100, ImageURL: "angel-summer", CategoryID: "660e8400-e29b-41d4-a716-446655440005"},
	{ID: "770e8400-e29b-41d4-a716-446655440017", Name: "Wintermelon Milk Tea", PriceCents: 1600, ImageURL: "wintermelon-milk", CategoryID: "660e8400-e29b-41d4-a716-446655440006"},
	{ID: "770e8400-e29b-41d4-a716-446655440018", Name: "Wintermelon Tea", PriceCents: 1300, ImageURL: "wintermelon-tea", CategoryID: "660e8400-e29b-41d4-a716-446655440006"},
	{ID: "770e8400-e29b-41d4-a716-446655440019", Name: "Wintermelon Tea With Sea Salt Foam", PriceCents: 1900, ImageURL: "wintermelon-sea-salt", CategoryID: "660e8400-e29b-41d4-a716-446655440006"},
	{ID: "770e8400-e29b-41d4-a716-446655440020", Name: "Black Bear", PriceCents: 1800, ImageURL: "black-bear", CategoryID: "660e8400-e29b-41d4-a716-446655440007"},
	{ID: "770e8400-e29b-41d4-a716-446655440021", Name: "The Duke", PriceCents: 1700, ImageURL: "the-duke", CategoryID: "660e8400-e29b-41d4-a716-446655440007"},
	{ID: "770e8400-e29b-41d4-a716-446655440022", Name: "Dalgona Coffee", PriceCents: 2200, ImageURL: "dalgona-coffee", CategoryID: "660e8400-e29b-41d4-a716-446655440008"},
}

var defaultSizes = []domain.SizeOption{
	{ID: "880e8400-e29b-41d4-a716-446655440001", Label: "Small", PriceCents: 0},
	{ID: "880e8400-e29b-41d4-a716-446655440002", Label: "Medium", PriceCents: 300},
	{ID: "880e8400-e29b-41d4-a716-446655440003", Label: "Large", PriceCents: 600},
}

var defaultToppings = []domain.ToppingOption{
	{ID: "990e8400-e29b-41d4-a716-446655440001", Label: "Extra Shot", PriceCents: 500},
	{ID: "990e8400-e29b-41d4-a716-446655440002", Label: "Whipped Cream", PriceCents: 200},
	{ID: "990e8400-e29b-41d4-a716-446655440003", Label: "Caramel Syrup", PriceCents: 300},
	{ID: "990e8400-e29b-41d4-a716-446655440004", Label: "Vanilla Syrup", PriceCents: 300},
	{ID: "990e8400-e29b-41d4-a716-446655440005", Label: "Chocolate Syrup", PriceCents: 300},
	{ID: "990e8400-e29b-41d4-a716-446655440006", Label: "Hazelnut Syrup", PriceCents: 300},
}

var defaultLevels = domain.Levels{
	Sugar:        []string{"Zero Sugar", "Less", "Recommended", "Extra"},
	Ice:          []string{"No Ice", "Less Ice", "Normal"},
	DefaultSugar: "Recommended",
	DefaultIce:   "Normal",
}

// Defaults is the built-in catalog.
type Defaults struct {
	Categories []domain.Category
	MenuItems  []domain.MenuItem
	Sizes      []domain.SizeOption
	Toppings   []domain.ToppingOption
	Levels     domain.Levels
}

// BuiltIn returns a copy of the built-in catalog.
func BuiltIn() Defaults {
	return Defaults{
		Categories: append([]domain.Category(nil), defaultCategories...),
		MenuItems:  append([]domain.MenuItem(nil), defaultMenuItems...),
		Sizes:      append([]domain.SizeOption(nil), defaultSizes...),
		Toppings:   append([]domain.ToppingOption(nil), defaultToppings...),
		Levels:     defaultLevels,
	}
}
