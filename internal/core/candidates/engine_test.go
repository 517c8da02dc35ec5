package candidates

import (
	"math"
	"net/url"
	"reflect"
	"sync"
	"testing"
)

func fixture() []Candidate {
	return []Candidate{
		{ID: "cand-001", Name: "Layla al-Hassan", Party: "Progressive Youth Coalition", Governorate: "baghdad", Gender: GenderFemale, Biography: "Former civic activist", BallotNumber: 101},
		{ID: "cand-002", Name: "Hassan al-Tamimi", Party: "Basra Renewal Bloc", Governorate: "basra", Gender: GenderMale, Biography: "Energy engineer working with port authorities", Incumbent: true, BallotNumber: 102},
		{ID: "cand-003", Name: "Ava Barzan", Party: "New Horizons Movement", Governorate: "erbil", Gender: GenderFemale, Biography: "Policy researcher", BallotNumber: 103},
		{ID: "cand-004", Name: "Sami al-Fayadh", Party: "Justice & Heritage Alliance", Governorate: "najaf", Gender: GenderMale, Biography: "Community organizer", Incumbent: true, BallotNumber: 104},
		{ID: "cand-005", Name: "Mira al-Jubouri", Party: "Reconstruction Front", Governorate: "ninawa", Gender: GenderFemale, Biography: "Urban planner", BallotNumber: 105},
		{ID: "cand-006", Name: "Omar al-Lami", Party: "Southern Prosperity List", Governorate: "dhi-qar", Gender: GenderMale, Biography: "Economist", BallotNumber: 106},
		{ID: "cand-007", Name: "Reem al-Khafaji", Party: "Future Cities Coalition", Governorate: "maysan", Gender: GenderFemale, Biography: "Civil Engineer piloting smart drainage", Incumbent: true, BallotNumber: 107},
		{ID: "cand-008", Name: "Mustafa al-Hilli", Party: "Basra Renewal Bloc", Governorate: "karbala", Gender: GenderMale, Biography: "Technology entrepreneur", BallotNumber: 108},
	}
}

func ids(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func bptr(b bool) *bool { return &b }

func TestQuery_NoCriteriaKeepsInsertionOrder(t *testing.T) {
	e := New(fixture())
	res := e.Query(Criteria{}, Page{Number: 1, Size: 10})
	if res.TotalMatching != 8 || res.TotalPages != 1 || len(res.Items) != 8 {
		t.Fatalf("unexpected result: total=%d pages=%d items=%d", res.TotalMatching, res.TotalPages, len(res.Items))
	}
	if res.Items[0].ID != "cand-001" || res.Items[7].ID != "cand-008" {
		t.Fatalf("order not preserved: %v", ids(res.Items))
	}
}

func TestQuery_FilterConjunction(t *testing.T) {
	e := New(fixture())

	in := e.Query(Criteria{Governorate: "basra", Incumbent: bptr(true)}, Page{Number: 1, Size: 10})
	if got := ids(in.Items); !reflect.DeepEqual(got, []string{"cand-002"}) {
		t.Fatalf("basra+incumbent=true: got %v", got)
	}

	out := e.Query(Criteria{Governorate: "basra", Incumbent: bptr(false)}, Page{Number: 1, Size: 10})
	if len(out.Items) != 0 || out.TotalMatching != 0 || out.TotalPages != 1 {
		t.Fatalf("basra+incumbent=false should be empty with one page: %+v", out)
	}

	party := e.Query(Criteria{Party: "Basra Renewal Bloc", Gender: GenderMale}, Page{Number: 1, Size: 10})
	if got := ids(party.Items); !reflect.DeepEqual(got, []string{"cand-002", "cand-008"}) {
		t.Fatalf("party+gender: got %v", got)
	}
}

func TestQuery_SearchIsCaseInsensitive(t *testing.T) {
	e := New(fixture())
	tests := []struct {
		search string
		want   []string
	}{
		{"ENGINEER", []string{"cand-002", "cand-007"}},
		{"  engineer  ", []string{"cand-002", "cand-007"}},
		{"renewal", []string{"cand-002", "cand-008"}},
		{"layla", []string{"cand-001"}},
		{"   ", []string{"cand-001", "cand-002", "cand-003", "cand-004", "cand-005", "cand-006", "cand-007", "cand-008"}},
		{"astronaut", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := ids(e.Query(Criteria{Search: tt.search}, Page{Number: 1, Size: 10}).Items)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("search %q: got %v want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestQuery_Pagination(t *testing.T) {
	e := New(fixture())

	res := e.Query(Criteria{}, Page{Number: 2, Size: 3})
	if got := ids(res.Items); !reflect.DeepEqual(got, []string{"cand-004", "cand-005", "cand-006"}) {
		t.Fatalf("page 2 size 3: got %v", got)
	}
	if res.TotalPages != 3 || res.TotalMatching != 8 {
		t.Fatalf("totals: %+v", res)
	}

	last := e.Query(Criteria{}, Page{Number: 3, Size: 3})
	if got := ids(last.Items); !reflect.DeepEqual(got, []string{"cand-007", "cand-008"}) {
		t.Fatalf("last partial page: got %v", got)
	}
}

func TestQuery_OutOfRangePageIsEmptyNotError(t *testing.T) {
	e := New(fixture())
	for _, n := range []int{99, 0, -1} {
		res := e.Query(Criteria{}, Page{Number: n, Size: 10})
		if res.Items == nil || len(res.Items) != 0 {
			t.Fatalf("page %d: expected empty non-nil items, got %v", n, res.Items)
		}
		if res.TotalPages != 1 || res.TotalMatching != 8 {
			t.Fatalf("page %d: totals independent of page, got %+v", n, res)
		}
	}
}

func TestQuery_HugePageDoesNotWrap(t *testing.T) {
	e := New(fixture())
	v, _ := url.ParseQuery("page=288230376151711745&limit=64")
	c, p := ParseParams(v)
	if p.Number != 288230376151711745 || p.Size != 64 {
		t.Fatalf("params: %+v", p)
	}
	res := e.Query(c, p)
	if len(res.Items) != 0 || res.TotalMatching != 8 || res.TotalPages != 1 {
		t.Fatalf("page far past the end should be empty, got %d items (%+v)", len(res.Items), res)
	}
	if res := e.Query(Criteria{}, Page{Number: math.MaxInt, Size: math.MaxInt}); len(res.Items) != 0 {
		t.Fatalf("max page and size: got %d items", len(res.Items))
	}
}

func TestReturnedItemsAreDetached(t *testing.T) {
	src := fixture()
	src[1].Priorities = []string{"Port jobs", "Clean water"}
	e := New(src)
	src[1].Priorities[0] = "caller edit"

	res := e.Query(Criteria{Governorate: "basra"}, Page{Number: 1, Size: 10})
	res.Items[0].Priorities[1] = "query edit"
	byID, _ := e.ByID("cand-002")
	byID.Priorities[0] = "byid edit"
	e.InGovernorate("basra")[0].Priorities[0] = "gov edit"

	got, _ := e.ByID("cand-002")
	if !reflect.DeepEqual(got.Priorities, []string{"Port jobs", "Clean water"}) {
		t.Fatalf("snapshot priorities changed: %v", got.Priorities)
	}
}

func TestQuery_ZeroSizeUsesDefault(t *testing.T) {
	res := New(fixture()).Query(Criteria{}, Page{Number: 1})
	if len(res.Items) != 8 || res.TotalPages != 1 {
		t.Fatalf("expected default page size, got %+v", res)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, size, want int }{
		{0, 10, 1}, {8, 10, 1}, {8, 3, 3}, {9, 3, 3}, {10, 3, 4}, {5, 0, 1}, {8, math.MaxInt, 1},
	}
	for _, c := range cases {
		if got := TotalPages(c.total, c.size); got != c.want {
			t.Fatalf("TotalPages(%d,%d) = %d, want %d", c.total, c.size, got, c.want)
		}
	}
}

func TestDistinctListings(t *testing.T) {
	e := New(fixture())
	wantParties := []string{
		"Basra Renewal Bloc",
		"Future Cities Coalition",
		"Justice & Heritage Alliance",
		"New Horizons Movement",
		"Progressive Youth Coalition",
		"Reconstruction Front",
		"Southern Prosperity List",
	}
	if got := e.Parties(); !reflect.DeepEqual(got, wantParties) {
		t.Fatalf("parties: %v", got)
	}
	wantGovs := []string{"baghdad", "basra", "dhi-qar", "erbil", "karbala", "maysan", "najaf", "ninawa"}
	if got := e.Governorates(); !reflect.DeepEqual(got, wantGovs) {
		t.Fatalf("governorates: %v", got)
	}

	// callers get copies
	p := e.Parties()
	p[0] = "mutated"
	if e.Parties()[0] != "Basra Renewal Bloc" {
		t.Fatalf("Parties leaked internal slice")
	}
}

func TestNew_SnapshotsInput(t *testing.T) {
	src := fixture()
	e := New(src)
	src[0].Name = "Changed"
	if c, _ := e.ByID("cand-001"); c.Name != "Layla al-Hassan" {
		t.Fatalf("engine should not observe caller mutation, got %q", c.Name)
	}
}

func TestByIDAndInGovernorate(t *testing.T) {
	e := New(fixture())
	if c, ok := e.ByID("cand-004"); !ok || c.Name != "Sami al-Fayadh" {
		t.Fatalf("ByID: %+v %v", c, ok)
	}
	if _, ok := e.ByID("nope"); ok {
		t.Fatalf("unknown id should miss")
	}
	if got := ids(e.InGovernorate("karbala")); !reflect.DeepEqual(got, []string{"cand-008"}) {
		t.Fatalf("InGovernorate: %v", got)
	}
	if got := e.InGovernorate("anbar"); got == nil || len(got) != 0 {
		t.Fatalf("unknown governorate should be empty non-nil")
	}
	if e.Len() != 8 {
		t.Fatalf("Len = %d", e.Len())
	}
}

func TestBreakdown(t *testing.T) {
	b := New(fixture()).Breakdown()
	if b.Total != 8 || b.Incumbents != 3 || b.Challengers != 5 {
		t.Fatalf("counts: %+v", b)
	}
	if b.ByGender[GenderFemale] != 4 || b.ByGender[GenderMale] != 4 {
		t.Fatalf("gender: %v", b.ByGender)
	}
	if b.ByParty["Basra Renewal Bloc"] != 2 || b.ByGovernorate["basra"] != 1 {
		t.Fatalf("party/governorate: %v %v", b.ByParty, b.ByGovernorate)
	}
}

func TestQuery_ConcurrentReaders(t *testing.T) {
	e := New(fixture())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if r := e.Query(Criteria{Search: "engineer"}, Page{Number: 1, Size: 1}); r.TotalMatching != 2 {
					t.Errorf("unexpected total %d", r.TotalMatching)
					return
				}
			}
		}()
	}
	wg.Wait()
}
