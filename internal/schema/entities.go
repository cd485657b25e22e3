package schema

// Entity payload schemas. Every field is mandatory.
var (
	AdministratorSignUp = New("administrator",
		Str("name").AtMost(100),
		Str("email").AtMost(500).Email(),
		Str("password").AtLeast(6).AtMost(72).InBytes(),
		Str("role").AtMost(500),
		Str("status"),
	)

	Login = New("login",
		Str("email").AtMost(500),
		Str("password").AtLeast(6),
	)

	Customer = New("customer",
		Str("firstName").AtMost(50),
		Str("lastName").AtMost(50),
		Str("email").AtMost(100).Email(),
		Str("password").AtLeast(6).AtMost(72).InBytes(),
		Str("address").AtMost(250),
		Str("city").AtMost(100),
		Str("province").AtMost(100),
		Int("postalCode"),
		Str("country").AtMost(250),
	)

	Category = New("category",
		Str("categoryName").AtMost(50),
	)

	Product = New("product",
		Str("productName").AtMost(255),
		Str("productDescription").AtMost(255),
		Dec("price").AtLeast(0),
		Int("quantityOnHand").AtLeast(0),
		Int("categoryId").AtLeast(1),
	)

	Order = New("order",
		Int("customerId").AtLeast(1),
		DateField("orderDate"),
		Dec("totalCost").AtLeast(0),
	)

	OrderedItem = New("orderedItem",
		Int("orderId").AtLeast(1),
		Int("productId").AtLeast(1),
		Int("quantity").AtLeast(1),
		Dec("unitPrice").AtLeast(0),
	)

	Payment = New("payment",
		Int("orderId").AtLeast(1),
		Str("paymentMethod").AtMost(100),
		DateField("paymentDate"),
		Dec("amount").AtLeast(0),
	)
)
