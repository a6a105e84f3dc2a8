package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestPlanFlow_CreateScheduleAndPayOff(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "plans@test.com", "password123")

	accountID := app.createAccount(t, token,
		`{"name":"Klarna","type":"bnpl","provider":"Klarna"}`)

	// Open a 4-installment plan; the purchase posts immediately as debt
	start := time.Now().AddDate(0, 0, 1)
	body := fmt.Sprintf(`{"account_id":%q,"provider":"Klarna","total_amount":24995,"num_installments":4,"frequency":"biweekly","start_date":%q}`,
		accountID, start.Format(time.RFC3339))
	rec := app.request("POST", "/api/v1/plans", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create plan failed: %d %s", rec.Code, rec.Body.String())
	}
	planID := parseJSON(t, rec)["plan"].(map[string]interface{})["id"].(string)

	if balance := app.accountBalance(t, token, accountID); balance != -24995 {
		t.Errorf("expected balance -24995 after purchase, got %d", balance)
	}

	// The derived schedule absorbs rounding in the final installment
	rec = app.request("GET", "/api/v1/plans/"+planID+"/schedule", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("schedule failed: %d %s", rec.Code, rec.Body.String())
	}
	schedule := parseJSON(t, rec)["schedule"].([]interface{})
	if len(schedule) != 4 {
		t.Fatalf("expected 4 installments, got %d", len(schedule))
	}
	var total float64
	for _, inst := range schedule {
		total += inst.(map[string]interface{})["amount"].(float64)
	}
	if total != 24995 {
		t.Errorf("expected schedule to sum to 24995, got %v", total)
	}
	last := schedule[3].(map[string]interface{})
	if last["amount"] != float64(6248) {
		t.Errorf("expected final installment 6248, got %v", last["amount"])
	}

	// Pay the first three installments
	for i := 0; i < 3; i++ {
		rec = app.request("POST", "/api/v1/plans/"+planID+"/payments", `{"amount":6249}`, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("payment %d failed: %d %s", i+1, rec.Code, rec.Body.String())
		}
	}

	rec = app.request("GET", "/api/v1/plans/"+planID+"/status", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status failed: %d %s", rec.Code, rec.Body.String())
	}
	status := parseJSON(t, rec)["status"].(map[string]interface{})
	if status["paid_count"] != float64(3) {
		t.Errorf("expected paid_count 3, got %v", status["paid_count"])
	}
	if status["remaining_amount"] != float64(6248) {
		t.Errorf("expected remaining 6248, got %v", status["remaining_amount"])
	}

	rec = app.request("GET", "/api/v1/plans/"+planID, "", token)
	plan := parseJSON(t, rec)["plan"].(map[string]interface{})
	if plan["is_completed"] != false {
		t.Errorf("expected incomplete plan, got %v", plan["is_completed"])
	}

	// The final payment clears the debt and completes the plan
	rec = app.request("POST", "/api/v1/plans/"+planID+"/payments", `{"amount":6248}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("final payment failed: %d %s", rec.Code, rec.Body.String())
	}

	if balance := app.accountBalance(t, token, accountID); balance != 0 {
		t.Errorf("expected balance 0 after payoff, got %d", balance)
	}
	rec = app.request("GET", "/api/v1/plans/"+planID, "", token)
	plan = parseJSON(t, rec)["plan"].(map[string]interface{})
	if plan["is_completed"] != true {
		t.Errorf("expected completed plan, got %v", plan["is_completed"])
	}
}

func TestPlanFlow_RequiresBNPLAccount(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "planacct@test.com", "password123")

	accountID := app.createAccount(t, token,
		`{"name":"Current","type":"current","initial_balance":50000}`)

	body := fmt.Sprintf(`{"account_id":%q,"provider":"Klarna","total_amount":10000,"num_installments":4,"frequency":"monthly","start_date":%q}`,
		accountID, time.Now().Format(time.RFC3339))
	rec := app.request("POST", "/api/v1/plans", body, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "INVALID_ACCOUNT_TYPE" {
		t.Errorf("expected INVALID_ACCOUNT_TYPE, got %v", errObj["code"])
	}
}

func TestPlanFlow_DeleteRejectedAfterPayments(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "plandelete@test.com", "password123")

	accountID := app.createAccount(t, token,
		`{"name":"Affirm","type":"bnpl","provider":"Affirm"}`)

	body := fmt.Sprintf(`{"account_id":%q,"provider":"Affirm","total_amount":12000,"num_installments":3,"frequency":"monthly","start_date":%q}`,
		accountID, time.Now().Format(time.RFC3339))
	rec := app.request("POST", "/api/v1/plans", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create plan failed: %d %s", rec.Code, rec.Body.String())
	}
	planID := parseJSON(t, rec)["plan"].(map[string]interface{})["id"].(string)

	rec = app.request("POST", "/api/v1/plans/"+planID+"/payments", `{"amount":4000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("payment failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", "/api/v1/plans/"+planID, "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
