package core

// EntityKind identifies one of the persisted entity types. The set is closed:
// every kind maps to exactly one table and one seed dataset file, resolved
// through typed switches rather than name lookup.
type EntityKind string

const (
	KindProduct           EntityKind = "products"
	KindUser              EntityKind = "users"
	KindExpense           EntityKind = "expenses"
	KindSale              EntityKind = "sales"
	KindPurchase          EntityKind = "purchases"
	KindSalesSummary      EntityKind = "salesSummary"
	KindPurchaseSummary   EntityKind = "purchaseSummary"
	KindExpenseSummary    EntityKind = "expenseSummary"
	KindExpenseByCategory EntityKind = "expenseByCategory"
)

// Kinds returns every entity kind in declaration order. The order is the
// deterministic tie-break when deriving load order from the dependency graph.
func Kinds() []EntityKind {
	return []EntityKind{
		KindProduct,
		KindUser,
		KindExpense,
		KindSale,
		KindPurchase,
		KindSalesSummary,
		KindPurchaseSummary,
		KindExpenseSummary,
		KindExpenseByCategory,
	}
}

// DependsOn returns the kinds this kind carries foreign-key references to.
// Referenced kinds must be loaded before their referents and reset after
// them.
func (k EntityKind) DependsOn() []EntityKind {
	switch k {
	case KindSale, KindPurchase:
		return []EntityKind{KindProduct}
	case KindExpenseByCategory:
		return []EntityKind{KindExpenseSummary}
	default:
		return nil
	}
}

// Valid reports whether k names a declared entity kind.
func (k EntityKind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}
