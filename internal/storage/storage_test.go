package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func intp(v int) *int { return &v }

func sampleMatch(id string, startMs int64, puuids ...string) model.MatchRecord {
	m := model.MatchRecord{
		MatchID:             id,
		GameMode:            "CLASSIC",
		QueueID:             420,
		GameStartTimestamp:  startMs,
		GameDurationSeconds: 1800,
	}
	for i, p := range puuids {
		m.Participants = append(m.Participants, model.ParticipantRecord{
			PUUID:        p,
			ChampionName: "Ahri",
			Win:          i == 0,
			Kills:        7,
			TeamPosition: "MIDDLE",
			TimePlayed:   intp(1795),
			Challenges:   &model.Challenges{SoloKills: intp(2)},
		})
	}
	return m
}

func TestAccountUpsertAndLookup(t *testing.T) {
	db := openMemDB(t)

	a := Account{PUUID: "p1", GameName: "Faker", TagLine: "KR1", FetchedAt: time.Unix(1700000000, 0)}
	if err := db.UpsertAccount(a); err != nil {
		t.Fatalf("UpsertAccount: %v", err)
	}

	got, err := db.GetAccount("faker", "kr1")
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got == nil || got.PUUID != "p1" || got.GameName != "Faker" {
		t.Fatalf("GetAccount = %+v, want p1/Faker", got)
	}
	if !got.FetchedAt.Equal(a.FetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, a.FetchedAt)
	}

	missing, err := db.GetAccount("nobody", "NA1")
	if err != nil {
		t.Fatalf("GetAccount missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown account, got %+v", missing)
	}

	// Renames refresh the row in place.
	a.GameName = "Hide on bush"
	if err := db.UpsertAccount(a); err != nil {
		t.Fatalf("UpsertAccount rename: %v", err)
	}
	got, _ = db.GetAccount("Hide on bush", "KR1")
	if got == nil || got.PUUID != "p1" {
		t.Errorf("renamed lookup = %+v", got)
	}
	if old, _ := db.GetAccount("Faker", "KR1"); old != nil {
		t.Errorf("old name still resolves: %+v", old)
	}
}

func TestFindAccount(t *testing.T) {
	db := openMemDB(t)
	if err := db.UpsertAccount(Account{PUUID: "abcdef", GameName: "Faker", TagLine: "KR1"}); err != nil {
		t.Fatalf("UpsertAccount: %v", err)
	}

	for _, ref := range []string{"abc", "abcdef", "Faker#KR1", "faker#kr1"} {
		got, err := db.FindAccount(ref)
		if err != nil {
			t.Fatalf("FindAccount(%q): %v", ref, err)
		}
		if got == nil || got.PUUID != "abcdef" {
			t.Errorf("FindAccount(%q) = %+v", ref, got)
		}
	}
	if got, _ := db.FindAccount("zzz"); got != nil {
		t.Errorf("FindAccount(zzz) = %+v, want nil", got)
	}
}

func TestMatchRoundTrip(t *testing.T) {
	db := openMemDB(t)

	m := sampleMatch("NA1_1", 1700000000000, "p1", "p2")
	if err := db.UpsertMatch(m); err != nil {
		t.Fatalf("UpsertMatch: %v", err)
	}

	got, err := db.GetMatch("NA1_1")
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if got == nil {
		t.Fatal("GetMatch returned nil")
	}
	if got.MatchID != m.MatchID || got.QueueID != 420 || got.GameStartTimestamp != m.GameStartTimestamp {
		t.Errorf("match = %+v", got)
	}
	if len(got.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(got.Participants))
	}
	p := got.Participants[0]
	if p.TimePlayed == nil || *p.TimePlayed != 1795 {
		t.Errorf("TimePlayed = %v", p.TimePlayed)
	}
	if p.Challenges == nil || p.Challenges.SoloKills == nil || *p.Challenges.SoloKills != 2 {
		t.Errorf("Challenges = %+v", p.Challenges)
	}
	if p.Challenges.KDA != nil {
		t.Error("absent KDA should stay absent after a round trip")
	}

	none, err := db.GetMatch("NA1_404")
	if err != nil || none != nil {
		t.Errorf("GetMatch missing = %v, %v; want nil, nil", none, err)
	}
}

func TestGetMatches_Subset(t *testing.T) {
	db := openMemDB(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := db.UpsertMatch(sampleMatch(id, 1, "p1")); err != nil {
			t.Fatalf("UpsertMatch: %v", err)
		}
	}

	got, err := db.GetMatches([]string{"a", "c", "zzz"})
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	if _, ok := got["zzz"]; ok {
		t.Error("uncached id returned")
	}
	if got["c"].MatchID != "c" {
		t.Errorf("got[c] = %+v", got["c"])
	}

	empty, err := db.GetMatches(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("GetMatches(nil) = %v, %v", empty, err)
	}
}

func TestPlayerMatchesNewestFirst(t *testing.T) {
	db := openMemDB(t)
	if err := db.UpsertAccount(Account{PUUID: "p1", GameName: "A", TagLine: "NA1"}); err != nil {
		t.Fatalf("UpsertAccount: %v", err)
	}
	matches := []model.MatchRecord{
		sampleMatch("old", 1000, "p1"),
		sampleMatch("new", 3000, "p1"),
		sampleMatch("mid", 2000, "p1"),
	}
	if err := db.UpsertMatches("p1", matches); err != nil {
		t.Fatalf("UpsertMatches: %v", err)
	}

	refs, err := db.ListPlayerMatches("p1")
	if err != nil {
		t.Fatalf("ListPlayerMatches: %v", err)
	}
	var ids []string
	for _, r := range refs {
		ids = append(ids, r.MatchID)
	}
	if strings.Join(ids, ",") != "new,mid,old" {
		t.Errorf("order = %v, want new,mid,old", ids)
	}
	if refs[0].GameMode != "CLASSIC" || !refs[0].GameStart.Equal(time.UnixMilli(3000)) {
		t.Errorf("ref = %+v", refs[0])
	}

	full, err := db.GetPlayerMatches("p1", 2)
	if err != nil {
		t.Fatalf("GetPlayerMatches: %v", err)
	}
	if len(full) != 2 || full[0].MatchID != "new" || full[1].MatchID != "mid" {
		t.Errorf("GetPlayerMatches limit 2 = %v", full)
	}
	all, _ := db.GetPlayerMatches("p1", 0)
	if len(all) != 3 {
		t.Errorf("GetPlayerMatches all = %d, want 3", len(all))
	}
}

func TestInsertIdempotency(t *testing.T) {
	db := openMemDB(t)
	if err := db.UpsertAccount(Account{PUUID: "p1", GameName: "A", TagLine: "NA1"}); err != nil {
		t.Fatalf("UpsertAccount: %v", err)
	}
	m := sampleMatch("NA1_1", 1000, "p1")
	for i := 0; i < 2; i++ {
		if err := db.UpsertMatch(m); err != nil {
			t.Fatalf("UpsertMatch #%d: %v", i, err)
		}
		if err := db.LinkPlayerMatch("p1", m.MatchID); err != nil {
			t.Fatalf("LinkPlayerMatch #%d: %v", i, err)
		}
	}
	refs, _ := db.ListPlayerMatches("p1")
	if len(refs) != 1 {
		t.Errorf("links = %d, want 1", len(refs))
	}
}

func TestListAccounts(t *testing.T) {
	db := openMemDB(t)
	for _, a := range []Account{
		{PUUID: "p1", GameName: "One", TagLine: "NA1"},
		{PUUID: "p2", GameName: "Two", TagLine: "NA1"},
	} {
		if err := db.UpsertAccount(a); err != nil {
			t.Fatalf("UpsertAccount: %v", err)
		}
	}
	if err := db.UpsertMatches("p2", []model.MatchRecord{
		sampleMatch("m1", 5000, "p2"),
		sampleMatch("m2", 6000, "p2"),
	}); err != nil {
		t.Fatalf("UpsertMatches: %v", err)
	}

	accts, err := db.ListAccounts()
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accts) != 2 {
		t.Fatalf("accounts = %d, want 2", len(accts))
	}
	if accts[0].PUUID != "p2" || accts[0].Matches != 2 {
		t.Errorf("accts[0] = %+v, want p2 with 2 matches", accts[0])
	}
	if !accts[0].Latest.Equal(time.UnixMilli(6000)) {
		t.Errorf("Latest = %v", accts[0].Latest)
	}
	if accts[1].Matches != 0 || !accts[1].Latest.IsZero() {
		t.Errorf("accts[1] = %+v, want no matches", accts[1])
	}
}

func TestDeletePlayerKeepsSharedMatches(t *testing.T) {
	db := openMemDB(t)
	for _, p := range []string{"p1", "p2"} {
		if err := db.UpsertAccount(Account{PUUID: p, GameName: p, TagLine: "NA1"}); err != nil {
			t.Fatalf("UpsertAccount: %v", err)
		}
	}
	shared := sampleMatch("shared", 1000, "p1", "p2")
	if err := db.UpsertMatches("p1", []model.MatchRecord{shared, sampleMatch("solo", 2000, "p1")}); err != nil {
		t.Fatalf("UpsertMatches p1: %v", err)
	}
	if err := db.UpsertMatches("p2", []model.MatchRecord{shared}); err != nil {
		t.Fatalf("UpsertMatches p2: %v", err)
	}

	removed, err := db.DeletePlayer("p1")
	if err != nil {
		t.Fatalf("DeletePlayer: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if m, _ := db.GetMatch("solo"); m != nil {
		t.Error("orphaned match survived")
	}
	if m, _ := db.GetMatch("shared"); m == nil {
		t.Error("shared match was deleted")
	}
	if a, _ := db.GetAccount("p1", "NA1"); a != nil {
		t.Error("account survived delete")
	}
	refs, _ := db.ListPlayerMatches("p2")
	if len(refs) != 1 {
		t.Errorf("p2 links = %d, want 1", len(refs))
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	if err := db.UpsertMatch(sampleMatch("NA1_1", 1000, "p1")); err != nil {
		t.Fatalf("UpsertMatch: %v", err)
	}

	cols, rows, err := db.QueryRaw("SELECT match_id, queue_id, body, NULL FROM matches")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 4 || cols[0] != "match_id" {
		t.Errorf("cols = %v", cols)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r[0] != "NA1_1" || r[1] != "420" || r[3] != "NULL" {
		t.Errorf("row = %v", r)
	}
	if !strings.HasPrefix(r[2], "<") || !strings.HasSuffix(r[2], " bytes>") {
		t.Errorf("blob cell = %q", r[2])
	}

	if _, _, err := db.QueryRaw("SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?,?,?"},
	}
	for _, tt := range tests {
		if got := placeholders(tt.n); got != tt.want {
			t.Errorf("placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
