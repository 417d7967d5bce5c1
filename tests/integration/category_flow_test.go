package integration

import (
	"net/http"
	"testing"

	"moneta/internal/models"
)

// findCategory returns the category with the given name from a GET
// /categories response, failing the test if it is absent.
func findCategory(t *testing.T, categories []interface{}, name string) map[string]interface{} {
	t.Helper()
	for _, c := range categories {
		cat := c.(map[string]interface{})
		if cat["name"] == name {
			return cat
		}
	}
	t.Fatalf("category %q not found", name)
	return nil
}

func TestCategoryFlow_SeededRegistry(t *testing.T) {
	app := setupApp(t)

	// Step 1: The registry starts with the default set, ordered by name
	rec := app.request("GET", "/api/v1/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != 13 {
		t.Fatalf("expected 13 seeded categories, got %d", len(categories))
	}
	first := categories[0].(map[string]interface{})
	if first["name"] != "Education" {
		t.Errorf("expected 'Education' first in name order, got %v", first["name"])
	}

	// Step 2: Seeded categories carry their subcategories and a color
	salary := findCategory(t, categories, "Salary")
	subs := salary["subcategories"].([]interface{})
	if len(subs) != 3 || subs[0] != "General" {
		t.Errorf("unexpected salary subcategories: %v", subs)
	}
	if salary["color"] != "#22c55e" {
		t.Errorf("expected salary color #22c55e, got %v", salary["color"])
	}

	// Step 3: Fetch one by id round-trips the same record
	rec = app.request("GET", "/api/v1/categories/"+salary["id"].(string), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	fetched := parseJSON(t, rec)["category"].(map[string]interface{})
	if fetched["name"] != "Salary" {
		t.Errorf("expected 'Salary', got %v", fetched["name"])
	}
}

func TestCategoryFlow_CreateAndDuplicate(t *testing.T) {
	app := setupApp(t)

	// Step 1: A new category without subcategories gets the default one
	rec := app.request("POST", "/api/v1/categories", `{"name":"Pets"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	pets := parseJSON(t, rec)["category"].(map[string]interface{})
	subs := pets["subcategories"].([]interface{})
	if len(subs) != 1 || subs[0] != models.DefaultSubcategory {
		t.Errorf("expected default subcategory, got %v", subs)
	}

	// Custom names are not in the palette and use the fallback color
	if pets["color"] != models.DefaultCategoryColor {
		t.Errorf("expected fallback color, got %v", pets["color"])
	}

	// Step 2: The same name again is a conflict
	rec = app.request("POST", "/api/v1/categories", `{"name":"Pets"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	errDetail := parseJSON(t, rec)["error"].(map[string]interface{})
	if errDetail["code"] != "CATEGORY_EXISTS" {
		t.Errorf("expected code CATEGORY_EXISTS, got %v", errDetail["code"])
	}

	// Step 3: A missing name fails binding
	rec = app.request("POST", "/api/v1/categories", `{"subcategories":["a"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCategoryFlow_Subcategories(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/categories", "")
	categories := parseJSON(t, rec)["categories"].([]interface{})
	leisure := findCategory(t, categories, "Leisure")
	leisureID := leisure["id"].(string)
	baseCount := len(leisure["subcategories"].([]interface{}))

	// Step 1: Add a new subcategory
	rec = app.request("POST", "/api/v1/categories/"+leisureID+"/subcategories",
		`{"name":"Streaming"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["category"].(map[string]interface{})
	subs := updated["subcategories"].([]interface{})
	if len(subs) != baseCount+1 {
		t.Fatalf("expected %d subcategories, got %d", baseCount+1, len(subs))
	}
	if subs[len(subs)-1] != "Streaming" {
		t.Errorf("expected 'Streaming' appended last, got %v", subs[len(subs)-1])
	}

	// Step 2: Adding it again is a conflict
	rec = app.request("POST", "/api/v1/categories/"+leisureID+"/subcategories",
		`{"name":"Streaming"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	errDetail := parseJSON(t, rec)["error"].(map[string]interface{})
	if errDetail["code"] != "SUBCATEGORY_EXISTS" {
		t.Errorf("expected code SUBCATEGORY_EXISTS, got %v", errDetail["code"])
	}

	// Step 3: Remove it
	rec = app.request("DELETE", "/api/v1/categories/"+leisureID+"/subcategories/Streaming", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated = parseJSON(t, rec)["category"].(map[string]interface{})
	if len(updated["subcategories"].([]interface{})) != baseCount {
		t.Errorf("expected subcategory removed, got %v", updated["subcategories"])
	}

	// Step 4: Removing an absent subcategory is a no-op, not an error
	rec = app.request("DELETE", "/api/v1/categories/"+leisureID+"/subcategories/Streaming", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for absent subcategory, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCategoryFlow_DeleteLeavesDanglingReference(t *testing.T) {
	app := setupApp(t)

	// Step 1: Create a custom category and a transaction in it
	rec := app.request("POST", "/api/v1/categories", `{"name":"Crypto"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	crypto := parseJSON(t, rec)["category"].(map[string]interface{})
	cryptoID := crypto["id"].(string)

	txID := app.createTransaction(t, `{"date":"2024-06-01","category":"Crypto","amount":-250}`)

	// Step 2: Delete the category
	rec = app.request("DELETE", "/api/v1/categories/"+cryptoID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 3: The transaction keeps the name as a dangling reference
	rec = app.request("GET", "/api/v1/transactions/"+txID, "")
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if tx["category"] != "Crypto" {
		t.Errorf("expected dangling category name kept, got %v", tx["category"])
	}

	// Step 4: The breakdown still lists it, under the fallback color
	rec = app.request("GET", "/api/v1/stats/breakdown?month=2024-06", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	breakdown := parseJSON(t, rec)["breakdown"].([]interface{})
	if len(breakdown) != 1 {
		t.Fatalf("expected 1 breakdown entry, got %d", len(breakdown))
	}
	entry := breakdown[0].(map[string]interface{})
	if entry["category"] != "Crypto" {
		t.Errorf("expected 'Crypto' in breakdown, got %v", entry["category"])
	}
	if entry["color"] != models.DefaultCategoryColor {
		t.Errorf("expected fallback color for dangling reference, got %v", entry["color"])
	}

	// Step 5: New transactions can no longer reference the deleted name
	rec = app.request("POST", "/api/v1/transactions",
		`{"date":"2024-06-02","category":"Crypto","amount":-10}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for deleted category, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCategoryFlow_GermanSeeds(t *testing.T) {
	app := setupAppLocale(t, models.LocaleGerman)

	rec := app.request("GET", "/api/v1/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != 13 {
		t.Fatalf("expected 13 seeded categories, got %d", len(categories))
	}

	gehalt := findCategory(t, categories, "Gehalt")
	if gehalt["color"] != "#22c55e" {
		t.Errorf("expected the salary color for Gehalt, got %v", gehalt["color"])
	}

	// The German salary category drives kind derivation too
	rec = app.request("POST", "/api/v1/transactions",
		`{"date":"2024-03-28","category":"Gehalt","amount":-150,"note":"Korrektur"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if tx["kind"] != string(models.KindIncome) {
		t.Errorf("expected kind 'income' for Gehalt, got %v", tx["kind"])
	}
}
