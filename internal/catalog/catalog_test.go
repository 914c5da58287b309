package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront/internal/models"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name, review, page, limit string
		wantPage, wantLimit       int
		wantReview                *int
	}{
		{"", "", "", "", 1, 12, nil},
		{"naxos", "", "3", "12", 3, 12, nil},
		{"", "0", "1", "5", 1, 5, intp(0)},
		{"", "10", "0", "-4", 1, 12, intp(10)},
		{"", " 7 ", "abc", "1000", 1, 100, intp(7)},
		{"", "", "9223372036854775807", "", 0, 12, nil},
		{"", "", "9223372036854775807", "1", 0, 1, nil},
	}
	for _, tt := range tests {
		q, err := ParseQuery(tt.name, tt.review, tt.page, tt.limit, DefaultLimits)
		if err != nil {
			t.Fatalf("ParseQuery(%+v): %v", tt, err)
		}
		if q.Skip() < 0 {
			t.Errorf("page %q: skip = %d overflowed", tt.page, q.Skip())
		}
		if tt.wantPage == 0 {
			continue
		}
		if q.Page != tt.wantPage || q.Limit != tt.wantLimit {
			t.Errorf("page/limit = %d/%d, want %d/%d", q.Page, q.Limit, tt.wantPage, tt.wantLimit)
		}
		switch {
		case tt.wantReview == nil && q.Review != nil:
			t.Errorf("review = %d, want no filter", *q.Review)
		case tt.wantReview != nil && (q.Review == nil || *q.Review != *tt.wantReview):
			t.Errorf("review = %v, want %d", q.Review, *tt.wantReview)
		}
	}
}

func TestParseQueryRejectsBadReview(t *testing.T) {
	for _, review := range []string{"11", "-1", "seven", "7.5"} {
		if _, err := ParseQuery("", review, "", "", DefaultLimits); !errors.Is(err, ErrInvalidReview) {
			t.Errorf("review %q: err = %v, want ErrInvalidReview", review, err)
		}
	}
}

func TestParseQueryClampsHugePage(t *testing.T) {
	q, err := ParseQuery("", "", strconv.FormatInt(math.MaxInt64, 10), "12", DefaultLimits)
	if err != nil {
		t.Fatal(err)
	}
	if int64(q.Page) != math.MaxInt64/12 {
		t.Errorf("page = %d, want %d", q.Page, int64(math.MaxInt64/12))
	}
	if skip := q.Skip(); skip < 0 || skip > math.MaxInt64-int64(q.Limit) {
		t.Errorf("skip = %d leaves no room for a page", skip)
	}
}

func TestFilter(t *testing.T) {
	q := Query{Page: 1, Limit: 12}
	if len(q.Filter()) != 0 {
		t.Errorf("empty query filter = %v", q.Filter())
	}

	q.Name = "a.b"
	q.Review = intp(0)
	f := q.Filter()
	name, ok := f["name"].(bson.M)
	if !ok || name["$regex"] != `a\.b` || name["$options"] != "i" {
		t.Errorf("name filter = %v", f["name"])
	}
	if f["review"] != 0 {
		t.Errorf("review filter = %v, want 0", f["review"])
	}
}

func TestSkip(t *testing.T) {
	if s := (Query{Page: 3, Limit: 12}).Skip(); s != 24 {
		t.Errorf("skip = %d, want 24", s)
	}
}

// memFinder evalúa el subconjunto de filtros que produce Query.Filter.
type memFinder struct {
	products []models.Product
	err      error
}

func (m *memFinder) match(filter bson.M) ([]models.Product, error) {
	var re *regexp.Regexp
	if nf, ok := filter["name"].(bson.M); ok {
		var err error
		re, err = regexp.Compile("(?i)" + nf["$regex"].(string))
		if err != nil {
			return nil, err
		}
	}
	out := make([]models.Product, 0)
	for _, p := range m.products {
		if re != nil && !re.MatchString(p.Name) {
			continue
		}
		if r, ok := filter["review"].(int); ok && p.Review != r {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memFinder) Find(_ context.Context, filter bson.M, skip, limit int64) ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	all, err := m.match(filter)
	if err != nil {
		return nil, err
	}
	if skip >= int64(len(all)) {
		return []models.Product{}, nil
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], nil
}

func (m *memFinder) Count(_ context.Context, filter bson.M) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	all, err := m.match(filter)
	return int64(len(all)), err
}

func seedProducts(n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{
			ID:     primitive.NewObjectID(),
			Name:   fmt.Sprintf("Xerjoff Alexandria %d", i),
			Review: i % 11,
		}
	}
	return out
}

func TestListPagesPartitionFilteredSet(t *testing.T) {
	finder := &memFinder{products: seedProducts(50)}
	svc := NewService(finder, zap.NewNop())

	for _, review := range []*int{nil, intp(0), intp(4)} {
		want, _ := finder.match(Query{Review: review}.Filter())

		seen := map[primitive.ObjectID]bool{}
		var got []models.Product
		for page := 1; ; page++ {
			res, err := svc.List(context.Background(), Query{Review: review, Page: page, Limit: 7})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			for _, p := range res.Products {
				if seen[p.ID] {
					t.Fatalf("duplicate %s on page %d", p.ID.Hex(), page)
				}
				seen[p.ID] = true
			}
			got = append(got, res.Products...)
			if !res.HasMore {
				break
			}
		}

		if len(got) != len(want) {
			t.Fatalf("review %v: got %d products, want %d", review, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i].ID {
				t.Fatalf("review %v: position %d differs", review, i)
			}
		}
	}
}

func TestListNameFilterIsCaseInsensitiveSubstring(t *testing.T) {
	finder := &memFinder{products: []models.Product{
		{ID: primitive.NewObjectID(), Name: "Xerjoff Naxos"},
		{ID: primitive.NewObjectID(), Name: "Xerjoff XJ 1861 Naxos"},
		{ID: primitive.NewObjectID(), Name: "Xerjoff Kobe"},
		{ID: primitive.NewObjectID(), Name: "Naxos (tester)"},
	}}
	svc := NewService(finder, zap.NewNop())

	res, err := svc.List(context.Background(), Query{Name: "NAXOS", Page: 1, Limit: 12})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 3 || len(res.Products) != 3 || res.HasMore {
		t.Errorf("page = %+v", res)
	}

	res, err = svc.List(context.Background(), Query{Name: "(tester)", Page: 1, Limit: 12})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 1 {
		t.Errorf("regex metacharacters must match literally, total = %d", res.Total)
	}
}

func TestListPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&memFinder{err: boom}, zap.NewNop())

	if _, err := svc.List(context.Background(), Query{Page: 1, Limit: 12}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func intp(v int) *int { return &v }
