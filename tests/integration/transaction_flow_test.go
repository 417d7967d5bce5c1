package integration

import (
	"fmt"
	"net/http"
	"testing"

	"moneta/internal/models"
)

func TestTransactionFlow_CreateUpdateDelete(t *testing.T) {
	app := setupApp(t)

	// Step 1: Record March salary; kind is derived, not sent
	rec := app.request("POST", "/api/v1/transactions",
		`{"date":"2024-03-01","category":"Salary","subcategory":"General","amount":3500,"from":"Acme Corp","note":"March salary","tag":"Recurring"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	salary := result["transaction"].(map[string]interface{})
	salaryID := salary["id"].(string)
	if salary["kind"] != string(models.KindIncome) {
		t.Errorf("expected kind 'income', got %v", salary["kind"])
	}
	if salary["track"] != true {
		t.Errorf("expected track to default to true, got %v", salary["track"])
	}

	// Step 2: Record a groceries expense; negative amount means money out
	rec = app.request("POST", "/api/v1/transactions",
		`{"date":"2024-03-05","category":"Groceries","subcategory":"Supermarket","amount":-120.50,"to":"SuperMart"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	groceries := result["transaction"].(map[string]interface{})
	groceriesID := groceries["id"].(string)
	if groceries["kind"] != string(models.KindExpense) {
		t.Errorf("expected kind 'expense', got %v", groceries["kind"])
	}

	// Step 3: Record a transfer between own accounts
	rec = app.request("POST", "/api/v1/transactions",
		`{"date":"2024-03-10","category":"Finance","amount":-500,"from":"Checking","to":"Savings"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	transfer := result["transaction"].(map[string]interface{})
	if transfer["kind"] != string(models.KindTransfer) {
		t.Errorf("expected kind 'transfer', got %v", transfer["kind"])
	}

	// Step 4: List newest first
	rec = app.request("GET", "/api/v1/transactions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	listResult := parseJSON(t, rec)
	if listResult["total_items"].(float64) != 3 {
		t.Fatalf("expected 3 transactions, got %.0f", listResult["total_items"].(float64))
	}
	data := listResult["data"].([]interface{})
	first := data[0].(map[string]interface{})
	if first["date"] != "2024-03-10" {
		t.Errorf("expected newest transaction first, got date %v", first["date"])
	}

	// Step 5: Fetch the salary by id
	rec = app.request("GET", "/api/v1/transactions/"+salaryID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	fetched := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if fetched["category"] != "Salary" {
		t.Errorf("expected category 'Salary', got %v", fetched["category"])
	}

	// Step 6: Correct the groceries amount; untouched fields stay put
	rec = app.request("PATCH", "/api/v1/transactions/"+groceriesID,
		`{"amount":-130.25,"note":"receipt corrected"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if updated["amount"].(float64) != -130.25 {
		t.Errorf("expected amount -130.25, got %v", updated["amount"])
	}
	if updated["note"] != "receipt corrected" {
		t.Errorf("expected updated note, got %v", updated["note"])
	}
	if updated["category"] != "Groceries" {
		t.Errorf("expected category unchanged, got %v", updated["category"])
	}

	// Step 7: Delete the salary and verify it is gone
	rec = app.request("DELETE", "/api/v1/transactions/"+salaryID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/transactions/"+salaryID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d: %s", rec.Code, rec.Body.String())
	}
	errResult := parseJSON(t, rec)
	errDetail := errResult["error"].(map[string]interface{})
	if errDetail["code"] != "TRANSACTION_NOT_FOUND" {
		t.Errorf("expected code TRANSACTION_NOT_FOUND, got %v", errDetail["code"])
	}
}

func TestTransactionFlow_DerivedKinds(t *testing.T) {
	app := setupApp(t)

	cases := []struct {
		name string
		body string
		kind models.TransactionKind
	}{
		{
			name: "positive amount is income",
			body: `{"date":"2024-03-01","category":"Finance","amount":25.00,"note":"dividend"}`,
			kind: models.KindIncome,
		},
		{
			name: "negative salary correction is still income",
			body: `{"date":"2024-03-28","category":"Salary","amount":-200}`,
			kind: models.KindIncome,
		},
		{
			name: "both endpoints make a transfer",
			body: `{"date":"2024-03-15","category":"Finance","amount":-1000,"from":"Checking","to":"Broker"}`,
			kind: models.KindTransfer,
		},
		{
			name: "negative amount is an expense",
			body: `{"date":"2024-03-20","category":"Leisure","amount":-42}`,
			kind: models.KindExpense,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.request("POST", "/api/v1/transactions", tc.body)
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
			}
			tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
			if tx["kind"] != string(tc.kind) {
				t.Errorf("expected kind %q, got %v", tc.kind, tx["kind"])
			}
		})
	}
}

func TestTransactionFlow_FilterSearchPaginate(t *testing.T) {
	app := setupApp(t)

	// Seed a small but varied ledger
	app.createTransaction(t, `{"date":"2024-03-01","category":"Salary","amount":3500,"tag":"Recurring"}`)
	app.createTransaction(t, `{"date":"2024-03-05","category":"Groceries","amount":-80,"note":"weekly shop"}`)
	app.createTransaction(t, `{"date":"2024-03-12","category":"Restaurants","amount":-45,"note":"Pizza night"}`)
	app.createTransaction(t, `{"date":"2024-04-02","category":"Groceries","amount":-60,"tag":"Recurring"}`)
	app.createTransaction(t, `{"date":"2024-04-10","category":"Finance","amount":-900,"from":"Checking","to":"Savings"}`)

	// Step 1: Filter by category
	rec := app.request("GET", "/api/v1/transactions?category=Groceries", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"].(float64) != 2 {
		t.Errorf("expected 2 groceries transactions, got %.0f", result["total_items"].(float64))
	}

	// Step 2: Filter by derived kind
	rec = app.request("GET", "/api/v1/transactions?kind=transfer", "")
	result = parseJSON(t, rec)
	if result["total_items"].(float64) != 1 {
		t.Errorf("expected 1 transfer, got %.0f", result["total_items"].(float64))
	}

	// Step 3: Filter by month
	rec = app.request("GET", "/api/v1/transactions?month=2024-03", "")
	result = parseJSON(t, rec)
	if result["total_items"].(float64) != 3 {
		t.Errorf("expected 3 transactions in 2024-03, got %.0f", result["total_items"].(float64))
	}

	// Step 4: Filter by tag
	rec = app.request("GET", "/api/v1/transactions?tag=Recurring", "")
	result = parseJSON(t, rec)
	if result["total_items"].(float64) != 2 {
		t.Errorf("expected 2 recurring transactions, got %.0f", result["total_items"].(float64))
	}

	// Step 5: Case-insensitive search over the note
	rec = app.request("GET", "/api/v1/transactions?search=pizza", "")
	result = parseJSON(t, rec)
	if result["total_items"].(float64) != 1 {
		t.Fatalf("expected 1 search hit, got %.0f", result["total_items"].(float64))
	}
	hit := result["data"].([]interface{})[0].(map[string]interface{})
	if hit["note"] != "Pizza night" {
		t.Errorf("expected the pizza note, got %v", hit["note"])
	}

	// Step 6: Inclusive date window
	rec = app.request("GET", "/api/v1/transactions?start_date=2024-03-05&end_date=2024-04-02", "")
	result = parseJSON(t, rec)
	if result["total_items"].(float64) != 3 {
		t.Errorf("expected 3 transactions in window, got %.0f", result["total_items"].(float64))
	}

	// Step 7: Pagination keeps the total while slicing the page
	rec = app.request("GET", "/api/v1/transactions?page=2&page_size=2", "")
	result = parseJSON(t, rec)
	if result["total_items"].(float64) != 5 {
		t.Errorf("expected total_items 5, got %.0f", result["total_items"].(float64))
	}
	if result["total_pages"].(float64) != 3 {
		t.Errorf("expected total_pages 3, got %.0f", result["total_pages"].(float64))
	}
	if len(result["data"].([]interface{})) != 2 {
		t.Errorf("expected 2 items on page 2, got %d", len(result["data"].([]interface{})))
	}

	// Step 8: An unknown kind is rejected at binding time
	rec = app.request("GET", "/api/v1/transactions?kind=donation", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad kind, got %d: %s", rec.Code, rec.Body.String())
	}
	errDetail := parseJSON(t, rec)["error"].(map[string]interface{})
	if errDetail["code"] != "VALIDATION" {
		t.Errorf("expected code VALIDATION, got %v", errDetail["code"])
	}
}

func TestTransactionFlow_BulkDelete(t *testing.T) {
	app := setupApp(t)

	id1 := app.createTransaction(t, `{"date":"2024-05-01","category":"Shopping","amount":-10}`)
	id2 := app.createTransaction(t, `{"date":"2024-05-02","category":"Shopping","amount":-20}`)
	id3 := app.createTransaction(t, `{"date":"2024-05-03","category":"Shopping","amount":-30}`)

	// Step 1: Delete two of the three in one call
	rec := app.request("POST", "/api/v1/transactions/bulk-delete",
		fmt.Sprintf(`{"ids":["%s","%s"]}`, id1, id2))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 2: Only the third remains
	rec = app.request("GET", "/api/v1/transactions", "")
	result := parseJSON(t, rec)
	if result["total_items"].(float64) != 1 {
		t.Fatalf("expected 1 remaining transaction, got %.0f", result["total_items"].(float64))
	}
	remaining := result["data"].([]interface{})[0].(map[string]interface{})
	if remaining["id"] != id3 {
		t.Errorf("expected the third transaction to remain, got %v", remaining["id"])
	}

	// Step 3: Ids that no longer exist are skipped silently
	rec = app.request("POST", "/api/v1/transactions/bulk-delete",
		fmt.Sprintf(`{"ids":["%s","%s"]}`, id1, id3))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/transactions", "")
	result = parseJSON(t, rec)
	if result["total_items"].(float64) != 0 {
		t.Errorf("expected empty ledger, got %.0f items", result["total_items"].(float64))
	}

	// Step 4: An empty id list fails binding
	rec = app.request("POST", "/api/v1/transactions/bulk-delete", `{"ids":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty ids, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransactionFlow_Validation(t *testing.T) {
	app := setupApp(t)

	cases := []struct {
		name string
		body string
		code string
	}{
		{
			name: "malformed date",
			body: `{"date":"15.03.2024","category":"Groceries","amount":-10}`,
			code: "VALIDATION",
		},
		{
			name: "zero amount",
			body: `{"date":"2024-03-15","category":"Groceries","amount":0}`,
			code: "ZERO_AMOUNT",
		},
		{
			name: "unknown category",
			body: `{"date":"2024-03-15","category":"Ghost","amount":-10}`,
			code: "VALIDATION",
		},
		{
			name: "unknown subcategory",
			body: `{"date":"2024-03-15","category":"Groceries","subcategory":"Caviar","amount":-10}`,
			code: "VALIDATION",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.request("POST", "/api/v1/transactions", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			errDetail := parseJSON(t, rec)["error"].(map[string]interface{})
			if errDetail["code"] != tc.code {
				t.Errorf("expected code %s, got %v", tc.code, errDetail["code"])
			}
		})
	}

	// A malformed path id is a validation error, not a miss
	rec := app.request("GET", "/api/v1/transactions/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d: %s", rec.Code, rec.Body.String())
	}

	// A well-formed id that matches nothing is a miss
	rec = app.request("GET", "/api/v1/transactions/00000000-0000-0000-0000-000000000000", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d: %s", rec.Code, rec.Body.String())
	}
}
