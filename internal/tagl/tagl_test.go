package tagl

import "testing"

func TestEncodePutTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		subject, relation, object string
		want                      Statement
	}{
		{"apple", SubRelation, "fruit", ">> apple _sub fruit"},
		{"a", "r", "b", ">> a r b"},
		{"new york", "_is_a", "city", ">> new york _is_a city"},
		{"ünïcode", "_sub", "thing/with/slash", ">> ünïcode _sub thing/with/slash"},
	}
	for _, tt := range tests {
		if got := EncodePutTag(tt.subject, tt.relation, tt.object); got != tt.want {
			t.Fatalf("EncodePutTag(%q, %q, %q) = %q; want %q", tt.subject, tt.relation, tt.object, got, tt.want)
		}
	}
}

func TestEncodePutPredicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		subject, clause string
		want            Statement
	}{
		{"apple", "_color red", ">> apple _color red"},
		{"s", "p", ">> s p"},
		// No grammar validation: whatever the user typed goes through untouched.
		{"dog", "has legs = 4, tail", ">> dog has legs = 4, tail"},
	}
	for _, tt := range tests {
		if got := EncodePutPredicate(tt.subject, tt.clause); got != tt.want {
			t.Fatalf("EncodePutPredicate(%q, %q) = %q; want %q", tt.subject, tt.clause, got, tt.want)
		}
	}
}

func TestCheckID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", " ", "\t\n"} {
		if err := CheckID(id); err != ErrEmptyTagID {
			t.Fatalf("CheckID(%q) = %v; want ErrEmptyTagID", id, err)
		}
	}
	if err := CheckID("fruit"); err != nil {
		t.Fatalf("CheckID(fruit) = %v; want nil", err)
	}
	if !TagID("x").Valid() || TagID("").Valid() {
		t.Fatalf("unexpected TagID.Valid results")
	}
}
