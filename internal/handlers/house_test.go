package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/slugnest-dev/slugnest/internal/models"
)

func TestCreateAndRetrieveHouse(t *testing.T) {
	r := setupRouter(t)

	payload := map[string]interface{}{
		"rent":    1500.00,
		"beds":    2,
		"baths":   1,
		"address": "1 Elm St",
	}

	w := doRequest(t, r, http.MethodPost, "/listings", payload, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created models.House
	decodeBody(t, w, &created)

	if created.ID == 0 {
		t.Fatal("create: expected a generated id")
	}

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/listings/%d", created.ID), nil, "")

	if w.Code != http.StatusOK {
		t.Fatalf("retrieve: got status %d, want %d", w.Code, http.StatusOK)
	}

	var fetched models.House
	decodeBody(t, w, &fetched)

	if !fetched.Rent.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("rent: got %s, want 1500", fetched.Rent)
	}
	if fetched.Beds != 2 || fetched.Baths != 1 {
		t.Errorf("beds/baths: got %d/%d, want 2/1", fetched.Beds, fetched.Baths)
	}
	if fetched.Address != "1 Elm St" {
		t.Errorf("address: got %q, want %q", fetched.Address, "1 Elm St")
	}
	if fetched.SquareFeet != nil {
		t.Errorf("square_feet: got %v, want nil", *fetched.SquareFeet)
	}
}

func TestCreateHouseDefaults(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/listings", map[string]interface{}{"address": "2 Oak Ave"}, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created models.House
	decodeBody(t, w, &created)

	if !created.Rent.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("rent default: got %s, want 1000.00", created.Rent)
	}
	if created.Beds != 3 {
		t.Errorf("beds default: got %d, want 3", created.Beds)
	}
	if created.Baths != 3 {
		t.Errorf("baths default: got %d, want 3", created.Baths)
	}
}

func TestCreateHouseValidation(t *testing.T) {
	r := setupRouter(t)

	cases := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"missing address", map[string]interface{}{"rent": 1200}},
		{"negative beds", map[string]interface{}{"address": "3 Pine Rd", "beds": -1}},
		{"negative rent", map[string]interface{}{"address": "3 Pine Rd", "rent": -50}},
		{"invalid url", map[string]interface{}{"address": "3 Pine Rd", "more_information": "not a url"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/listings", tc.payload, "")

			if w.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want %d: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestCreateHouseIgnoresClientID(t *testing.T) {
	r := setupRouter(t)

	payload := map[string]interface{}{
		"id":      999,
		"address": "4 Birch Ln",
		"unknown": "ignored",
	}

	w := doRequest(t, r, http.MethodPost, "/listings", payload, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created models.House
	decodeBody(t, w, &created)

	if created.ID == 999 {
		t.Error("client-supplied id was not ignored")
	}
	if created.ID == 0 {
		t.Error("expected a generated id")
	}
}

func TestListHousesOrdering(t *testing.T) {
	r := setupRouter(t)

	for i := 1; i <= 3; i++ {
		createTestHouse(t, fmt.Sprintf("%d Main St", i))
	}

	w := doRequest(t, r, http.MethodGet, "/listings", nil, "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	var houses []models.House
	decodeBody(t, w, &houses)

	if len(houses) != 3 {
		t.Fatalf("got %d houses, want 3", len(houses))
	}

	for i := 1; i < len(houses); i++ {
		if houses[i-1].ID < houses[i].ID {
			t.Errorf("listings not ordered by descending id: %d before %d", houses[i-1].ID, houses[i].ID)
		}
	}
}

func TestUpdateHouseFull(t *testing.T) {
	r := setupRouter(t)

	sqft := 900
	payload := map[string]interface{}{
		"rent":        2500,
		"beds":        4,
		"baths":       2,
		"square_feet": sqft,
		"address":     "5 Cedar Ct",
		"description": "roomy",
		"contact":     "555-0100",
	}

	w := doRequest(t, r, http.MethodPost, "/listings", payload, "")

	var created models.House
	decodeBody(t, w, &created)

	// PUT with only the required field resets everything else to defaults.
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/listings/%d", created.ID), map[string]interface{}{"address": "5 Cedar Ct, Unit B"}, "")

	if w.Code != http.StatusOK {
		t.Fatalf("update: got status %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var updated models.House
	decodeBody(t, w, &updated)

	if updated.ID != created.ID {
		t.Errorf("id changed on update: got %d, want %d", updated.ID, created.ID)
	}
	if updated.Address != "5 Cedar Ct, Unit B" {
		t.Errorf("address: got %q", updated.Address)
	}
	if !updated.Rent.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("rent not reset to default: got %s", updated.Rent)
	}
	if updated.Beds != 3 || updated.Baths != 3 {
		t.Errorf("beds/baths not reset to defaults: got %d/%d", updated.Beds, updated.Baths)
	}
	if updated.SquareFeet != nil {
		t.Errorf("square_feet not reset: got %v", *updated.SquareFeet)
	}
	if updated.Description != "" || updated.Contact != "" {
		t.Errorf("text fields not reset: %q %q", updated.Description, updated.Contact)
	}

	w = doRequest(t, r, http.MethodPut, "/listings/98765", map[string]interface{}{"address": "nowhere"}, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("update unknown id: got status %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestPatchHouse(t *testing.T) {
	r := setupRouter(t)

	payload := map[string]interface{}{
		"rent":        1800,
		"beds":        2,
		"address":     "6 Spruce Way",
		"description": "sunny",
	}

	w := doRequest(t, r, http.MethodPost, "/listings", payload, "")

	var created models.House
	decodeBody(t, w, &created)

	w = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/listings/%d", created.ID), map[string]interface{}{"rent": 2000}, "")

	if w.Code != http.StatusOK {
		t.Fatalf("patch: got status %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var patched models.House
	decodeBody(t, w, &patched)

	if !patched.Rent.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("rent: got %s, want 2000", patched.Rent)
	}
	if patched.Address != "6 Spruce Way" {
		t.Errorf("address changed by partial update: got %q", patched.Address)
	}
	if patched.Description != "sunny" {
		t.Errorf("description changed by partial update: got %q", patched.Description)
	}
	if patched.Beds != 2 {
		t.Errorf("beds changed by partial update: got %d", patched.Beds)
	}

	w = doRequest(t, r, http.MethodPatch, "/listings/98765", map[string]interface{}{"rent": 2000}, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("patch unknown id: got status %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteHouse(t *testing.T) {
	r := setupRouter(t)

	house := createTestHouse(t, "7 Walnut Blvd")
	path := fmt.Sprintf("/listings/%d", house.ID)

	w := doRequest(t, r, http.MethodDelete, path, nil, "")

	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: got status %d, want %d", w.Code, http.StatusNoContent)
	}

	w = doRequest(t, r, http.MethodGet, path, nil, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("retrieve after delete: got status %d, want %d", w.Code, http.StatusNotFound)
	}

	w = doRequest(t, r, http.MethodDelete, path, nil, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("delete twice: got status %d, want %d", w.Code, http.StatusNotFound)
	}
}
