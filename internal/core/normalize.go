package core

import "strings"

// fieldClass is the result of classifying a resolved custom-field name:
// either a grouped field stored under its catalog group, or a field
// belonging to one of the two positional owner records.
type fieldClass struct {
	owner      bool
	ownerIndex int    // 0 or 1, valid when owner
	name       string // field name with any owner prefix stripped
}

// classifyField decides where a resolved field name belongs. Prefix
// rules, in precedence order: "1st Owner" -> owner 0, "2nd Owner" or
// "2nd-Owner" -> owner 1, anything else stays grouped. The owner
// prefix plus its trailing space is stripped; a name that is exactly
// the prefix (no trailing space) is kept as-is under that owner.
func classifyField(name string) fieldClass {
	switch {
	case strings.HasPrefix(name, "1st Owner"):
		return fieldClass{owner: true, ownerIndex: 0, name: strings.Replace(name, "1st Owner ", "", 1)}
	case strings.HasPrefix(name, "2nd Owner"):
		return fieldClass{owner: true, ownerIndex: 1, name: strings.Replace(name, "2nd Owner ", "", 1)}
	case strings.HasPrefix(name, "2nd-Owner"):
		return fieldClass{owner: true, ownerIndex: 1, name: strings.Replace(name, "2nd-Owner ", "", 1)}
	default:
		return fieldClass{name: name}
	}
}

// Normalize converts raw CRM contacts into their grouped form using the
// field catalog. Pure function: no I/O, deterministic for identical
// inputs.
//
// Fields whose id is unknown to the catalog are dropped silently; that
// is expected upstream variance, not a fault. Duplicate (group, name)
// or (owner, name) pairs resolve last-write-wins in list order.
func Normalize(contacts []RawContact, catalog map[string]FieldDefinition) []NormalizedContact {
	out := make([]NormalizedContact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, normalizeContact(c, catalog))
	}
	return out
}

func normalizeContact(c RawContact, catalog map[string]FieldDefinition) NormalizedContact {
	grouped := make(map[string]map[string]string)
	ownerSlots := [2]map[string]string{}

	for _, f := range c.CustomField {
		def, ok := catalog[f.ID]
		if !ok {
			continue
		}
		// Every matched definition claims its group, owner fields
		// included, so grouping keys mirror the distinct groups seen.
		if grouped[def.Group] == nil {
			grouped[def.Group] = make(map[string]string)
		}
		cls := classifyField(def.Name)
		if cls.owner {
			if ownerSlots[cls.ownerIndex] == nil {
				ownerSlots[cls.ownerIndex] = make(map[string]string)
			}
			ownerSlots[cls.ownerIndex][cls.name] = f.Value
			continue
		}
		grouped[def.Group][cls.name] = f.Value
	}

	// Empty owner records are dropped; the survivors keep positional
	// order, so the slice length is 0, 1 or 2.
	owners := make([]map[string]string, 0, 2)
	for _, o := range ownerSlots {
		if len(o) > 0 {
			owners = append(owners, o)
		}
	}

	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		name = notAvailable
	}

	return NormalizedContact{
		ID:           c.ID,
		Name:         name,
		Email:        orNA(c.Email),
		Phone:        orNA(c.Phone),
		CustomFields: grouped,
		Owners:       owners,
	}
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
