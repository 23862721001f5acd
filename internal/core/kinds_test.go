package core

import "testing"

func TestKindsValid(t *testing.T) {
	for _, k := range Kinds() {
		if !k.Valid() {
			t.Fatalf("kind %q should be valid", k)
		}
	}
	if EntityKind("warehouses").Valid() {
		t.Fatalf("undeclared kind should not be valid")
	}
}

func TestDependsOnDeclared(t *testing.T) {
	for _, k := range Kinds() {
		for _, dep := range k.DependsOn() {
			if !dep.Valid() {
				t.Fatalf("kind %q depends on undeclared kind %q", k, dep)
			}
			if dep == k {
				t.Fatalf("kind %q depends on itself", k)
			}
		}
	}
	deps := KindExpenseByCategory.DependsOn()
	if len(deps) != 1 || deps[0] != KindExpenseSummary {
		t.Fatalf("expenseByCategory must reference expenseSummary, got %v", deps)
	}
}
