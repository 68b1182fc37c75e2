package core

import (
	"reflect"
	"testing"
)

func testCatalog() map[string]FieldDefinition {
	return map[string]FieldDefinition{
		"f1": {ID: "f1", Name: "1st Owner Name", Group: "Owners"},
		"f2": {ID: "f2", Name: "1st Owner Phone", Group: "Owners"},
		"f3": {ID: "f3", Name: "2nd Owner Name", Group: "Owners"},
		"f4": {ID: "f4", Name: "2nd-Owner Phone", Group: "Owners"},
		"f5": {ID: "f5", Name: "Business Legal Name", Group: "General"},
		"f6": {ID: "f6", Name: "MySQL User-Email", Group: "General"},
		"f7": {ID: "f7", Name: "Website", Group: "General"},
	}
}

func TestClassifyField(t *testing.T) {
	cases := []struct {
		in        string
		owner     bool
		ownerIdx  int
		fieldName string
	}{
		{"1st Owner Name", true, 0, "Name"},
		{"1st Owner Date of Birth", true, 0, "Date of Birth"},
		{"2nd Owner Name", true, 1, "Name"},
		{"2nd-Owner Phone", true, 1, "Phone"},
		{"Business Legal Name", false, 0, "Business Legal Name"},
		{"Website", false, 0, "Website"},
		// Bare prefix with no trailing separator keeps its name.
		{"1st Owner", true, 0, "1st Owner"},
	}
	for _, tc := range cases {
		got := classifyField(tc.in)
		if got.owner != tc.owner || (got.owner && got.ownerIndex != tc.ownerIdx) || got.name != tc.fieldName {
			t.Fatalf("classifyField(%q) = %+v, want owner=%v idx=%d name=%q",
				tc.in, got, tc.owner, tc.ownerIdx, tc.fieldName)
		}
	}
}

func TestNormalizeOwnerFields(t *testing.T) {
	contacts := []RawContact{{
		ID:        "c1",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		CustomField: []RawCustomField{
			{ID: "f1", Value: "Alice"},
			{ID: "f3", Value: "Bob"},
			{ID: "f4", Value: "555-0100"},
			{ID: "f5", Value: "Acme Roofing LLC"},
		},
	}}

	got := Normalize(contacts, testCatalog())
	if len(got) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(got))
	}
	c := got[0]
	if len(c.Owners) != 2 {
		t.Fatalf("expected 2 owners, got %d", len(c.Owners))
	}
	if c.Owners[0]["Name"] != "Alice" {
		t.Fatalf("owners[0][Name] = %q, want Alice", c.Owners[0]["Name"])
	}
	if c.Owners[1]["Name"] != "Bob" || c.Owners[1]["Phone"] != "555-0100" {
		t.Fatalf("owners[1] = %v", c.Owners[1])
	}
	if c.CustomFields["General"]["Business Legal Name"] != "Acme Roofing LLC" {
		t.Fatalf("grouped fields = %v", c.CustomFields)
	}
}

func TestNormalizeNoOwnerFields(t *testing.T) {
	contacts := []RawContact{{
		ID:          "c1",
		CustomField: []RawCustomField{{ID: "f5", Value: "Acme"}},
	}}
	got := Normalize(contacts, testCatalog())
	if len(got[0].Owners) != 0 {
		t.Fatalf("expected empty owners, got %v", got[0].Owners)
	}
}

func TestNormalizeSingleOwnerDropsEmptySlot(t *testing.T) {
	// Only a 2nd-owner field: the empty 1st slot disappears and the
	// survivor keeps its position at the front.
	contacts := []RawContact{{
		ID:          "c1",
		CustomField: []RawCustomField{{ID: "f3", Value: "Bob"}},
	}}
	got := Normalize(contacts, testCatalog())
	owners := got[0].Owners
	if len(owners) != 1 || owners[0]["Name"] != "Bob" {
		t.Fatalf("owners = %v", owners)
	}
}

func TestNormalizeUnknownFieldDropped(t *testing.T) {
	contacts := []RawContact{{
		ID: "c1",
		CustomField: []RawCustomField{
			{ID: "nope", Value: "ignored"},
			{ID: "f7", Value: "acme.example"},
		},
	}}
	got := Normalize(contacts, testCatalog())
	if len(got[0].CustomFields["General"]) != 1 {
		t.Fatalf("expected unknown id dropped, got %v", got[0].CustomFields)
	}
}

func TestNormalizeLastWriteWins(t *testing.T) {
	contacts := []RawContact{{
		ID: "c1",
		CustomField: []RawCustomField{
			{ID: "f7", Value: "old.example"},
			{ID: "f7", Value: "new.example"},
		},
	}}
	got := Normalize(contacts, testCatalog())
	if v := got[0].CustomFields["General"]["Website"]; v != "new.example" {
		t.Fatalf("Website = %q, want new.example", v)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cases := []struct {
		contact RawContact
		name    string
		email   string
		phone   string
	}{
		{RawContact{FirstName: "Jane", LastName: "Doe", Email: "j@x.com", Phone: "1"}, "Jane Doe", "j@x.com", "1"},
		{RawContact{FirstName: "Jane"}, "Jane", "N/A", "N/A"},
		{RawContact{LastName: "Doe"}, "Doe", "N/A", "N/A"},
		{RawContact{}, "N/A", "N/A", "N/A"},
	}
	for i, tc := range cases {
		got := Normalize([]RawContact{tc.contact}, testCatalog())[0]
		if got.Name != tc.name || got.Email != tc.email || got.Phone != tc.phone {
			t.Fatalf("case %d: got name=%q email=%q phone=%q", i, got.Name, got.Email, got.Phone)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	contacts := []RawContact{{
		ID:        "c1",
		FirstName: "Jane",
		CustomField: []RawCustomField{
			{ID: "f1", Value: "Alice"},
			{ID: "f5", Value: "Acme"},
		},
	}}
	cat := testCatalog()
	first := Normalize(contacts, cat)
	second := Normalize(contacts, cat)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalization not deterministic:\n%v\n%v", first, second)
	}
}
