package main

type sampleCustomer struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

type sampleCategory struct {
	Name        string
	Description string
}

type sampleProduct struct {
	Name        string
	Description string
	Price       string
	Category    string
	Stock       int
}

// samplePassword satisfies the password policy for every seeded account
const samplePassword = "password123"

var sampleCustomers = []sampleCustomer{
	{"sarah_connor", "sarah@example.com", "Sarah", "Connor", "555-0201", "111 Tech Blvd, San Francisco, CA 94102"},
	{"mike_ross", "mike@example.com", "Mike", "Ross", "555-0202", "222 Legal Ave, Boston, MA 02101"},
	{"emma_watson", "emma@example.com", "Emma", "Watson", "555-0203", "333 Star Lane, Seattle, WA 98101"},
	{"david_miller", "david@example.com", "David", "Miller", "555-0204", "444 Business St, Miami, FL 33101"},
	{"lisa_anderson", "lisa@example.com", "Lisa", "Anderson", "555-0205", "555 Garden Way, Denver, CO 80201"},
	{"john_doe", "john@example.com", "John", "Doe", "555-0101", "123 Main St, New York, NY 10001"},
	{"jane_smith", "jane@example.com", "Jane", "Smith", "555-0102", "456 Oak Ave, Los Angeles, CA 90001"},
	{"bob_johnson", "bob@example.com", "Bob", "Johnson", "555-0103", "789 Pine Rd, Chicago, IL 60601"},
}

var sampleCategories = []sampleCategory{
	{"Electronics", "Electronic devices and accessories"},
	{"Clothing", "Apparel and fashion items"},
	{"Books", "Physical and digital books"},
	{"Home & Garden", "Home improvement and garden supplies"},
	{"Sports & Outdoors", "Sporting goods and outdoor equipment"},
	{"Toys & Games", "Toys, games, and hobby items"},
	{"Food & Beverages", "Groceries and gourmet foods"},
}

var sampleProducts = []sampleProduct{
	{"Wireless Bluetooth Headphones", "Noise-cancelling wireless headphones with 30-hour battery life", "149.99", "Electronics", 50},
	{"Smart Watch Series 5", "Smartwatch with health tracking and GPS", "299.99", "Electronics", 30},
	{"Laptop Stand Aluminum", "Aluminum laptop stand with adjustable height", "39.99", "Electronics", 100},
	{"4K Webcam", "Ultra HD webcam with auto-focus", "89.99", "Electronics", 8},
	{"Cotton T-Shirt (3-Pack)", "Cotton t-shirts in assorted colors", "29.99", "Clothing", 200},
	{"Denim Jeans", "Classic fit denim jeans", "59.99", "Clothing", 80},
	{"Winter Jacket", "Waterproof winter jacket with insulated lining", "129.99", "Clothing", 40},
	{"Go Programming Handbook", "From first program to production services", "44.99", "Books", 75},
	{"The Art of Web Design", "Modern web design principles", "39.99", "Books", 60},
	{"Cooking Made Easy", "500+ recipes for everyday cooking", "24.99", "Books", 90},
	{"LED Desk Lamp", "Adjustable LED desk lamp with USB charging port", "34.99", "Home & Garden", 120},
	{"Indoor Plant Set (5-Pack)", "Easy-care indoor plants", "49.99", "Home & Garden", 5},
	{"Storage Bins Set", "Stackable storage bins with lids", "29.99", "Home & Garden", 85},
	{"Yoga Mat Premium", "Non-slip yoga mat with carrying strap", "34.99", "Sports & Outdoors", 110},
	{"Camping Tent 4-Person", "Waterproof tent for 4 people", "159.99", "Sports & Outdoors", 25},
	{"Resistance Bands Set", "Resistance bands in five strengths", "24.99", "Sports & Outdoors", 95},
	{"Board Game: Strategy Master", "Strategy board game for 2-6 players", "39.99", "Toys & Games", 70},
	{"Building Blocks Set", "500-piece building blocks set", "44.99", "Toys & Games", 65},
	{"Organic Coffee Beans (2lb)", "Organic whole bean coffee", "19.99", "Food & Beverages", 150},
	{"Green Tea Sampler", "Twelve single-origin green teas", "14.99", "Food & Beverages", 0},
}
