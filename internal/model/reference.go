package model

// Static reference data served to clients and used for seeding.

type Bank struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

var Banks = []Bank{
	{ID: "sbi", Name: "State Bank of India", Code: "SBI"},
	{ID: "hdfc", Name: "HDFC Bank", Code: "HDFC"},
	{ID: "icici", Name: "ICICI Bank", Code: "ICICI"},
	{ID: "pnb", Name: "Punjab National Bank", Code: "PNB"},
	{ID: "bob", Name: "Bank of Baroda", Code: "BOB"},
	{ID: "axis", Name: "Axis Bank", Code: "AXIS"},
	{ID: "kotak", Name: "Kotak Mahindra Bank", Code: "KOTAK"},
	{ID: "canara", Name: "Canara Bank", Code: "CANARA"},
	{ID: "union", Name: "Union Bank of India", Code: "UBI"},
	{ID: "indian", Name: "Indian Bank", Code: "IBL"},
}

type PaymentMethodSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var DefaultPaymentMethods = []PaymentMethodSeed{
	{Name: "Cash", Description: "Physical cash payments"},
	{Name: "UPI", Description: "Unified Payments Interface"},
	{Name: "Debit Card", Description: "Bank debit card payments"},
	{Name: "Credit Card", Description: "Credit card payments"},
	{Name: "Net Banking", Description: "Online banking transfers"},
	{Name: "Cheque", Description: "Bank cheque payments"},
	{Name: "Paytm", Description: "Paytm wallet payments"},
	{Name: "PhonePe", Description: "PhonePe wallet payments"},
	{Name: "Google Pay", Description: "Google Pay wallet payments"},
	{Name: "Amazon Pay", Description: "Amazon Pay wallet payments"},
}

type CategorySeed struct {
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
	Description string       `json:"description"`
}

var DefaultCategories = []CategorySeed{
	{"Salary", CategoryTypeIncome, "💼", "#10B981", "Monthly salary income"},
	{"Freelance Income", CategoryTypeIncome, "💻", "#3B82F6", "Freelance project income"},
	{"Business Income", CategoryTypeIncome, "🏢", "#8B5CF6", "Business profits"},
	{"Rental Income", CategoryTypeIncome, "🏠", "#F59E0B", "Property rental income"},
	{"Interest Income", CategoryTypeIncome, "📈", "#10B981", "Bank interest and other interest income"},
	{"Dividends", CategoryTypeIncome, "📊", "#84CC16", "Stock dividends and mutual fund distributions"},
	{"Pension", CategoryTypeIncome, "👴", "#06B6D4", "Retirement pension income"},
	{"Agricultural Income", CategoryTypeIncome, "🌾", "#EC4899", "Agricultural income"},
	{"Other Income", CategoryTypeIncome, "💰", "#6B7280", "Other sources of income"},

	{"Groceries & Vegetables", CategoryTypeExpense, "🛒", "#EF4444", "Groceries and vegetables"},
	{"Dairy Products", CategoryTypeExpense, "🥛", "#F59E0B", "Milk, curd, cheese and other dairy products"},
	{"Electricity & Water", CategoryTypeExpense, "💡", "#F59E0B", "Electricity and water bills"},
	{"Mobile & Internet", CategoryTypeExpense, "📱", "#3B82F6", "Mobile recharge and internet bills"},
	{"Rent & Housing", CategoryTypeExpense, "🏠", "#8B5CF6", "Rent and housing expenses"},
	{"Transport & Fuel", CategoryTypeExpense, "🚗", "#3B82F6", "Transportation and fuel expenses"},
	{"Medical & Healthcare", CategoryTypeExpense, "🏥", "#EF4444", "Medical expenses and healthcare"},
	{"Education & Books", CategoryTypeExpense, "📚", "#3B82F6", "Education fees and books"},
	{"Clothing & Fashion", CategoryTypeExpense, "👕", "#EC4899", "Clothing and fashion accessories"},
	{"Entertainment & Movies", CategoryTypeExpense, "🎬", "#8B5CF6", "Entertainment and movies"},
	{"Restaurants & Food Delivery", CategoryTypeExpense, "🍽️", "#EF4444", "Restaurant meals and food delivery"},
	{"Temple & Donations", CategoryTypeExpense, "🛕", "#F59E0B", "Temple donations and charity"},
	{"Festivals & Celebrations", CategoryTypeExpense, "🎉", "#EC4899", "Festival expenses and celebrations"},
	{"Gold & Jewelry", CategoryTypeExpense, "💍", "#F59E0B", "Gold and jewelry purchases"},
	{"Insurance Premiums", CategoryTypeExpense, "🛡️", "#06B6D4", "Life, health, and other insurance premiums"},
	{"EMI & Loans", CategoryTypeExpense, "🏦", "#EF4444", "EMI payments and loan installments"},
	{"Taxes & GST", CategoryTypeExpense, "📄", "#EF4444", "Income tax and GST payments"},
	{"Online Shopping", CategoryTypeExpense, "🛍️", "#8B5CF6", "E-commerce and online shopping"},
	{"Fresh Vegetables & Fruits", CategoryTypeExpense, "🥬", "#10B981", "Fresh vegetables and fruits"},
	{"Snacks & Sweets", CategoryTypeExpense, "🍬", "#EC4899", "Snacks, sweets and beverages"},
	{"Other Expenses", CategoryTypeExpense, "💸", "#6B7280", "Other miscellaneous expenses"},
}

var FinancialTerms = map[string]string{
	"SIP":     "Systematic Investment Plan - Regular monthly investment in mutual funds",
	"EMI":     "Equated Monthly Installment - Monthly loan payment",
	"FD":      "Fixed Deposit - Bank deposit with fixed interest rate",
	"RD":      "Recurring Deposit - Monthly savings deposit",
	"PPF":     "Public Provident Fund - Long-term government savings scheme",
	"EPF":     "Employee Provident Fund - Retirement savings for employees",
	"NPS":     "National Pension System - Government pension scheme",
	"ELSS":    "Equity Linked Savings Scheme - Tax-saving mutual fund",
	"GST":     "Goods and Services Tax - Indirect tax on goods and services",
	"TDS":     "Tax Deducted at Source - Tax deducted before payment",
	"ITR":     "Income Tax Return - Annual tax filing",
	"PAN":     "Permanent Account Number - Tax identification number",
	"Aadhaar": "Unique identification number issued by UIDAI",
	"UPI":     "Unified Payments Interface - Instant payment system",
	"IMPS":    "Immediate Payment Service - Instant money transfer",
	"NEFT":    "National Electronic Funds Transfer - Money transfer system",
	"RTGS":    "Real Time Gross Settlement - High-value money transfer",
	"LTCG":    "Long Term Capital Gains - Tax on long-term investments",
	"STCG":    "Short Term Capital Gains - Tax on short-term investments",
}

type FinancialFestival struct {
	Name         string `json:"name"`
	Month        string `json:"month"`
	Significance string `json:"significance"`
}

var FinancialFestivals = []FinancialFestival{
	{Name: "Diwali", Month: "October/November", Significance: "Gold purchases, investments"},
	{Name: "Dhanteras", Month: "October/November", Significance: "Gold and silver buying"},
	{Name: "Akshaya Tritiya", Month: "April/May", Significance: "Gold purchases, new beginnings"},
	{Name: "Navratri", Month: "March/April & September/October", Significance: "Business investments"},
	{Name: "Gudi Padwa", Month: "March/April", Significance: "New financial year beginnings"},
	{Name: "Ugadi", Month: "March/April", Significance: "New year, new investments"},
}
