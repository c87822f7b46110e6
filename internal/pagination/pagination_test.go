package pagination

import (
	"testing"
)

func TestCursorRoundTrip(t *testing.T) {
	for _, id := range []int{1, 42, 999999, 7000001} {
		cursor := EncodeCursor(id)
		got, ok := DecodeCursor(cursor)
		if !ok {
			t.Fatalf("DecodeCursor(%q) reported invalid", cursor)
		}
		if got != id {
			t.Errorf("round trip mismatch: encoded %d, decoded %d", id, got)
		}
	}
}

func TestDecodeCursorMalformed(t *testing.T) {
	cases := []string{"", "not-base64!!", "Zm9v", "LTU=", "MA=="}
	for _, c := range cases {
		if id, ok := DecodeCursor(c); ok {
			t.Errorf("DecodeCursor(%q) = %d, want invalid", c, id)
		}
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 20},
		{-5, 20},
		{1, 1},
		{20, 20},
		{100, 100},
		{101, 100},
		{100000, 100},
	}
	for _, c := range cases {
		if got := ClampLimit(c.in); got != c.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseLimit(t *testing.T) {
	if got := ParseLimit("abc"); got != DefaultLimit {
		t.Errorf("ParseLimit(abc) = %d, want default", got)
	}
	if got := ParseLimit(""); got != DefaultLimit {
		t.Errorf("ParseLimit(empty) = %d, want default", got)
	}
	if got := ParseLimit("50"); got != 50 {
		t.Errorf("ParseLimit(50) = %d", got)
	}
	if got := ParseLimit("500"); got != MaxLimit {
		t.Errorf("ParseLimit(500) = %d, want max", got)
	}
}

type row struct{ id int }

func makeRows(ids ...int) []row {
	out := make([]row, 0, len(ids))
	for _, id := range ids {
		out = append(out, row{id: id})
	}
	return out
}

func TestBuildPageLastPage(t *testing.T) {
	page := BuildPage(makeRows(1, 2, 3), 5, func(r row) int { return r.id })
	if page.PageInfo.HasNextPage {
		t.Fatalf("expected no next page")
	}
	if page.PageInfo.NextCursor != "" {
		t.Fatalf("unexpected cursor %q", page.PageInfo.NextCursor)
	}
	if len(page.Data) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(page.Data))
	}
}

func TestBuildPageDropsSurplusRow(t *testing.T) {
	page := BuildPage(makeRows(10, 11, 12, 13), 3, func(r row) int { return r.id })
	if !page.PageInfo.HasNextPage {
		t.Fatalf("expected next page")
	}
	if len(page.Data) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(page.Data))
	}
	lastID, ok := DecodeCursor(page.PageInfo.NextCursor)
	if !ok {
		t.Fatalf("cursor %q did not decode", page.PageInfo.NextCursor)
	}
	if lastID != 12 {
		t.Errorf("cursor encodes %d, want last returned id 12", lastID)
	}
}

func TestBuildPageEmpty(t *testing.T) {
	page := BuildPage(nil, 20, func(r row) int { return r.id })
	if page.PageInfo.HasNextPage || page.PageInfo.NextCursor != "" {
		t.Fatalf("empty result must terminate pagination: %+v", page.PageInfo)
	}
}

// Walking pages of ids must visit every id exactly once.
func TestBuildPageDisjointWalk(t *testing.T) {
	all := makeRows(1, 2, 3, 4, 5, 6, 7)
	limit := 3
	seen := map[int]bool{}
	after := 0
	for {
		var batch []row
		for _, r := range all {
			if r.id > after {
				batch = append(batch, r)
			}
			if len(batch) == limit+1 {
				break
			}
		}
		page := BuildPage(batch, limit, func(r row) int { return r.id })
		for _, r := range page.Data {
			if seen[r.id] {
				t.Fatalf("id %d returned twice", r.id)
			}
			seen[r.id] = true
		}
		if !page.PageInfo.HasNextPage {
			break
		}
		id, ok := DecodeCursor(page.PageInfo.NextCursor)
		if !ok {
			t.Fatalf("bad cursor mid-walk")
		}
		after = id
	}
	if len(seen) != len(all) {
		t.Fatalf("walk visited %d of %d ids", len(seen), len(all))
	}
}
