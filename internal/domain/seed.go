package domain

// seedOrders: исходный набор заказов. Наружу отдаётся только через SeedOrders.
var seedOrders = [...]Order{
	{
		ID:               "1",
		MerchantName:     "Amazon",
		MerchantImage:    "https://res.cloudinary.com/caskchain/image/upload/v1717158058/Sequra/amazon.png",
		MerchantLogo:     "https://cdn.iconscout.com/icon/free/png-512/free-amazon-1543560-1306063.png",
		Date:             "2021-10-01",
		NextDueAmount:    100,
		NextDueDate:      "2021-11-01",
		Status:           OrderStatusPending,
		Reference:        "123456789",
		Price:            100,
		NumberOfArticles: 5,
		ShippedArticles:  2,
	},
	{
		ID:               "2",
		MerchantName:     "Ebay",
		MerchantImage:    "https://res.cloudinary.com/caskchain/image/upload/v1717158059/Sequra/ebay.png",
		MerchantLogo:     "https://cdn.iconscout.com/icon/free/png-512/free-ebay-13-675708.png",
		Date:             "2021-10-01",
		NextDueAmount:    200,
		NextDueDate:      "2021-11-01",
		Status:           OrderStatusPending,
		Reference:        "987654321",
		Price:            200,
		NumberOfArticles: 10,
		ShippedArticles:  5,
	},
	{
		ID:               "3",
		MerchantName:     "Costco",
		MerchantImage:    "https://res.cloudinary.com/caskchain/image/upload/v1717158062/Sequra/costco.png",
		MerchantLogo:     "https://cdn.iconscout.com/icon/free/png-512/free-costco-282448.png",
		Date:             "2023-05-30",
		NextDueAmount:    300,
		NextDueDate:      "2024-11-01",
		Status:           OrderStatusPending,
		Reference:        "123456777",
		Price:            300,
		NumberOfArticles: 15,
		ShippedArticles:  7,
	},
}

// SeedOrders возвращает свежую копию исходных заказов.
// Каждый вызов отдаёт новый массив, поэтому мутации не затрагивают seed.
func SeedOrders() []Order {
	return CloneOrders(seedOrders[:])
}
