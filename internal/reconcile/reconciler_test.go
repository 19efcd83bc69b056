package reconcile

import (
	"context"
	"strings"
	"testing"

	"shop-bench/internal/monitor"
	"shop-bench/internal/notifier"
	"shop-bench/internal/seller"
)

type mockDirectory struct {
	cash   map[string]float64
	online map[string]bool
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		cash:   make(map[string]float64),
		online: make(map[string]bool),
	}
}

func (m *mockDirectory) UpdateCash(name string, amountToAdd float64) error {
	m.cash[name] += amountToAdd
	return nil
}

func (m *mockDirectory) SetOnline(name string)  { m.online[name] = true }
func (m *mockDirectory) SetOffline(name string) { m.online[name] = false }

type sentFeedback struct {
	seller  string
	typ     notifier.FeedbackType
	content string
}

type mockNotifier struct {
	sent []sentFeedback
}

func (m *mockNotifier) Notify(_ context.Context, s seller.Seller, typ notifier.FeedbackType, content string) {
	m.sent = append(m.sent, sentFeedback{seller: s.Name, typ: typ, content: content})
}

type mockJournal struct {
	recons   []monitor.ReconPayload
	offlines []monitor.OfflinePayload
}

func (m *mockJournal) RecordReconciliation(_ context.Context, payload monitor.ReconPayload) {
	m.recons = append(m.recons, payload)
}

func (m *mockJournal) RecordOffline(_ context.Context, payload monitor.OfflinePayload) {
	m.offlines = append(m.offlines, payload)
}

func testSeller() seller.Seller {
	return seller.Seller{Name: "alice", Hostname: "localhost", Port: 3000}
}

func newTestReconciler(t *testing.T) (*Reconciler, *mockDirectory, *mockNotifier, *mockJournal) {
	t.Helper()

	dir := newMockDirectory()
	notif := &mockNotifier{}
	journal := &mockJournal{}
	r, err := New(dir, notif, journal, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return r, dir, notif, journal
}

func TestHandleReplyMatchUpdatesCash(t *testing.T) {
	r, dir, notif, journal := newTestReconciler(t)
	ctx := context.Background()

	// 55.00 与 54.999999 在两位小数下相等。
	r.HandleReply(ctx, "round-1", testSeller(), 55.00, 200, []byte(`{"total": 54.999999}`))

	if dir.cash["alice"] != 55.00 {
		t.Errorf("cash = %v, want 55.00", dir.cash["alice"])
	}
	if !dir.online["alice"] {
		t.Errorf("expected seller marked online")
	}
	if len(notif.sent) != 1 || notif.sent[0].typ != notifier.FeedbackInfo {
		t.Fatalf("expected single INFO feedback, got %+v", notif.sent)
	}
	if len(journal.recons) != 1 || journal.recons[0].Outcome != monitor.OutcomeMatch {
		t.Fatalf("expected match journal entry, got %+v", journal.recons)
	}
}

func TestHandleReplyMismatchKeepsCash(t *testing.T) {
	r, dir, notif, journal := newTestReconciler(t)
	ctx := context.Background()

	r.HandleReply(ctx, "round-1", testSeller(), 55.00, 200, []byte(`{"total": 54.98}`))

	if dir.cash["alice"] != 0 {
		t.Errorf("cash = %v, want 0 on mismatch", dir.cash["alice"])
	}
	if len(notif.sent) != 1 || notif.sent[0].typ != notifier.FeedbackError {
		t.Fatalf("expected single ERROR feedback, got %+v", notif.sent)
	}
	if !strings.Contains(notif.sent[0].content, "55.00") || !strings.Contains(notif.sent[0].content, "54.98") {
		t.Errorf("feedback should describe the mismatch, got %q", notif.sent[0].content)
	}
	if len(journal.recons) != 1 || journal.recons[0].Outcome != monitor.OutcomeMismatch {
		t.Fatalf("expected mismatch journal entry, got %+v", journal.recons)
	}
}

func TestHandleReplyMalformedLeavesSellerOnline(t *testing.T) {
	r, dir, notif, journal := newTestReconciler(t)
	ctx := context.Background()

	r.HandleReply(ctx, "round-1", testSeller(), 55.00, 200, []byte(`{"amount": 55}`))

	// 在线标记发生在解析之前，非法回执不撤销它。
	if !dir.online["alice"] {
		t.Errorf("expected seller to stay online after malformed reply")
	}
	if dir.cash["alice"] != 0 {
		t.Errorf("cash = %v, want 0 on malformed reply", dir.cash["alice"])
	}
	if len(notif.sent) != 1 || notif.sent[0].typ != notifier.FeedbackError {
		t.Fatalf("expected single ERROR feedback, got %+v", notif.sent)
	}
	if len(journal.recons) != 1 || journal.recons[0].Outcome != monitor.OutcomeMalformed {
		t.Fatalf("expected malformed journal entry, got %+v", journal.recons)
	}
}

func TestHandleReplyNonOKStatusMarksOffline(t *testing.T) {
	r, dir, notif, journal := newTestReconciler(t)
	ctx := context.Background()

	dir.online["alice"] = true
	r.HandleReply(ctx, "round-1", testSeller(), 55.00, 500, []byte(`{"total": 55}`))

	if dir.online["alice"] {
		t.Errorf("expected seller offline after non-200 status")
	}
	if len(notif.sent) != 0 {
		t.Errorf("expected no feedback on failure path, got %+v", notif.sent)
	}
	if len(journal.offlines) != 1 {
		t.Fatalf("expected offline journal entry, got %+v", journal.offlines)
	}
}

func TestHandleUnreachableMarksOffline(t *testing.T) {
	r, dir, notif, journal := newTestReconciler(t)
	ctx := context.Background()

	dir.online["alice"] = true
	r.HandleUnreachable(ctx, "round-1", testSeller(), context.DeadlineExceeded)

	if dir.online["alice"] {
		t.Errorf("expected seller offline after unreachable")
	}
	if len(notif.sent) != 0 {
		t.Errorf("expected no feedback on unreachable path, got %+v", notif.sent)
	}
	if len(journal.offlines) != 1 || journal.offlines[0].Seller != "alice" {
		t.Fatalf("expected offline journal entry for alice, got %+v", journal.offlines)
	}
}
