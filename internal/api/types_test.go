package api

import "testing"

func TestPageHasMore(t *testing.T) {
	cases := []struct {
		total, limit, offset int
		want                 bool
	}{
		{45, 20, 0, true},
		{45, 20, 20, true},
		{45, 20, 40, false},
		{20, 20, 0, false},
		{0, 20, 0, false},
		{21, 20, 0, true},
	}
	for _, tc := range cases {
		p := Page[Recipe]{Total: tc.total, Limit: tc.limit, Offset: tc.offset}
		if got := p.HasMore(); got != tc.want {
			t.Errorf("HasMore(total=%d, limit=%d, offset=%d) = %v, want %v",
				tc.total, tc.limit, tc.offset, got, tc.want)
		}
	}
}

func TestListParamsDefaults(t *testing.T) {
	v := ListParams{}.values()
	if got := v.Get("limit"); got != "20" {
		t.Errorf("limit = %q, want 20", got)
	}
	if got := v.Get("offset"); got != "0" {
		t.Errorf("offset = %q, want 0", got)
	}
	if v.Has("search") {
		t.Error("empty search should not be encoded")
	}

	v = ListParams{Limit: 5, Offset: 10, Search: "суп"}.values()
	if v.Get("limit") != "5" || v.Get("offset") != "10" || v.Get("search") != "суп" {
		t.Errorf("values = %v", v)
	}
}
