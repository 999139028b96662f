package core

// Default category suggestions offered by the presentation layer. Categories
// remain an open set: nothing here is enforced against transactions or
// budgets.
var (
	DefaultIncomeCategories = []string{
		"Salary",
		"Freelance",
		"Investments",
		"Gifts",
		"Other",
	}

	DefaultExpenseCategories = []string{
		"Housing",
		"Food",
		"Utilities",
		"Transportation",
		"Entertainment",
		"Healthcare",
		"Shopping",
		"Education",
		"Personal",
		"Debt",
		"Other",
	}
)
