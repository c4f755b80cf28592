package domain

import "testing"

func TestOrderTargetRefs(t *testing.T) {
	multi := Order{
		StyleImageURL:  "/static/landing/styles/masters/masters-02.jpg",
		StyleImageURLs: []string{"a", "b", "c"},
	}
	if got := multi.TargetCount(); got != 3 {
		t.Fatalf("multi target = %d, want list length", got)
	}

	single := Order{StyleImageURL: "/static/landing/styles/masters/masters-02.jpg"}
	refs := single.TargetRefs()
	if len(refs) != 1 || refs[0] != single.StyleImageURL {
		t.Fatalf("single refs = %v", refs)
	}

	var empty Order
	if empty.TargetRefs() != nil {
		t.Fatalf("empty order has refs: %v", empty.TargetRefs())
	}
}

func TestOrderUnfinished(t *testing.T) {
	tests := []struct {
		name  string
		order Order
		want  bool
	}{
		{"no refs", Order{}, false},
		{"nothing done", Order{StyleImageURLs: []string{"a", "b"}}, true},
		{"partial", Order{StyleImageURLs: []string{"a", "b"}, ResultURLs: []string{"r1"}}, true},
		{"complete", Order{StyleImageURLs: []string{"a", "b"}, ResultURLs: []string{"r1", "r2"}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.order.Unfinished(); got != tc.want {
				t.Fatalf("Unfinished() = %v, want %v", got, tc.want)
			}
		})
	}
}
