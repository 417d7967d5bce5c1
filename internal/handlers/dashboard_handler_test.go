package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"moneta/internal/live"
	"moneta/internal/services"
	"moneta/internal/store"
	"moneta/internal/testutil"
)

// The dashboard handler serves a live snapshot, so these tests run against
// a real store instead of a mock.

func dashboardClock() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func setupDashboardRouter(t *testing.T, st *store.Store) *gin.Engine {
	t.Helper()

	txSvc := services.NewTransactionService(st)
	refresher := live.NewRefresher(st, txSvc, dashboardClock)
	t.Cleanup(refresher.Close)

	r := gin.New()
	r.GET("/dashboard", NewDashboardHandler(refresher).GetDashboard)
	return r
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("serves the initial snapshot", func(t *testing.T) {
		st := testutil.SetupTestStore(t)
		testutil.CreateTestTransaction(t, st, "2024-03-01", "Salary", 3000)
		testutil.CreateTestTransaction(t, st, "2024-03-10", "Groceries", -54.30)
		r := setupDashboardRouter(t, st)

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		transactions := result["transactions"].([]interface{})
		if len(transactions) != 2 {
			t.Errorf("expected 2 transactions, got %d", len(transactions))
		}
		monthly := result["monthly"].([]interface{})
		if len(monthly) != 12 {
			t.Fatalf("expected 12 month buckets, got %d", len(monthly))
		}
		summary := result["summary"].(map[string]interface{})
		if summary["month"] != "2024-03" {
			t.Errorf("expected summary for 2024-03, got %v", summary["month"])
		}
	})

	t.Run("refresh parameter recomputes synchronously", func(t *testing.T) {
		st := testutil.SetupTestStore(t)
		r := setupDashboardRouter(t, st)

		rec := doRequest(r, "GET", "/dashboard", "")
		result := parseJSON(t, rec)
		if got := len(result["transactions"].([]interface{})); got != 0 {
			t.Fatalf("expected an empty snapshot, got %d transactions", got)
		}

		// Writing through the DB handle fires no change notification, so
		// only an explicit refresh can surface the row.
		testutil.CreateTestTransaction(t, st, "2024-03-10", "Groceries", -20)

		rec = doRequest(r, "GET", "/dashboard?refresh=true", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result = parseJSON(t, rec)
		if got := len(result["transactions"].([]interface{})); got != 1 {
			t.Errorf("expected the refreshed snapshot to include the new row, got %d", got)
		}
		summary := result["summary"].(map[string]interface{})
		if summary["total_expenses"].(float64) != 20 {
			t.Errorf("expected expenses 20, got %v", summary["total_expenses"])
		}
	})
}
