package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/media"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

type profileFixture struct {
	service  *ProfileService
	profiles *memory.ProfileRepository
	players  *memory.PlayerRepository
	objects  *memStorage
	clock    *clockwork.FakeClock
}

func newProfileFixture() profileFixture {
	fx := profileFixture{
		profiles: seededProfiles(managerProfile("coach"), playerProfile("kid"), parentProfile("mum"), parentProfile("dad")),
		players: memory.NewPlayerRepository([]player.Player{
			{ID: "p1", FullName: "Abe"},
			{ID: "p2", FullName: "Bea", ParentID: "dad"},
		}),
		objects: newMemStorage(),
		clock:   newTestClock(),
	}
	fx.service = NewProfileService(fx.profiles, fx.players, fx.objects, logging.NewNop(), fx.clock)
	return fx
}

func TestProfileService_UpdateMe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newProfileFixture()
	jersey := 10

	updated, err := fx.service.UpdateMe(ctx, "kid", UpdateProfileInput{FullName: " Kid Kim ", TeamName: " Lions ", Position: "Forward", JerseyNumber: &jersey})
	if err != nil {
		t.Fatalf("update me: %v", err)
	}
	if updated.FullName != "Kid Kim" || updated.TeamName != "Lions" || *updated.JerseyNumber != 10 {
		t.Fatalf("unexpected profile %+v", updated)
	}

	me, err := fx.service.GetMe(ctx, "kid")
	if err != nil || me.FullName != "Kid Kim" {
		t.Fatalf("expected stored update, got %+v err=%v", me, err)
	}

	zero := 0
	if _, err := fx.service.UpdateMe(ctx, "kid", UpdateProfileInput{FullName: "Kid", JerseyNumber: &zero}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for jersey, got %v", err)
	}
	if _, err := fx.service.UpdateMe(ctx, "kid", UpdateProfileInput{FullName: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for name, got %v", err)
	}
	if _, err := fx.service.Get(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileService_UploadAvatarReplacesPrevious(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newProfileFixture()

	first, err := fx.service.UploadAvatar(ctx, "kid", UploadInput{FileName: "me.png", ContentType: "image/png", Body: strings.NewReader("one")})
	if err != nil {
		t.Fatalf("first avatar: %v", err)
	}
	wantPath := fmt.Sprintf("kid/avatar-%d.png", testNow.UnixMilli())
	if first.AvatarPath != wantPath || first.AvatarURL != "http://files.test/avatars/"+wantPath {
		t.Fatalf("unexpected avatar fields %+v", first)
	}

	fx.clock.Advance(time.Second)
	second, err := fx.service.UploadAvatar(ctx, "kid", UploadInput{FileName: "me.webp", ContentType: "image/webp", Body: strings.NewReader("two")})
	if err != nil {
		t.Fatalf("second avatar: %v", err)
	}
	if !fx.objects.Has(media.BucketAvatars, second.AvatarPath) {
		t.Fatalf("expected new avatar stored")
	}
	if fx.objects.Has(media.BucketAvatars, wantPath) {
		t.Fatalf("expected previous avatar removed")
	}

	if _, err := fx.service.UploadAvatar(ctx, "kid", UploadInput{FileName: "clip.mp4", ContentType: "video/mp4", Body: strings.NewReader("v")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for video avatar, got %v", err)
	}
}

func TestProfileService_LinkAndUnlinkPlayer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newProfileFixture()

	parent, err := fx.service.LinkPlayer(ctx, "mum", "p1")
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if len(parent.ParentOf) != 1 || parent.ParentOf[0] != "p1" {
		t.Fatalf("expected parent_of [p1], got %v", parent.ParentOf)
	}
	linked, _, _ := fx.players.GetByID(ctx, "p1")
	if linked.ParentID != "mum" {
		t.Fatalf("expected player linked to mum, got %q", linked.ParentID)
	}

	again, err := fx.service.LinkPlayer(ctx, "mum", "p1")
	if err != nil || len(again.ParentOf) != 1 {
		t.Fatalf("expected idempotent relink, got %v err=%v", again.ParentOf, err)
	}

	children, err := fx.service.ListMyChildren(ctx, "mum")
	if err != nil || len(children) != 1 || children[0].ID != "p1" {
		t.Fatalf("unexpected children %+v err=%v", children, err)
	}

	if _, err := fx.service.LinkPlayer(ctx, "mum", "p2"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for another parent's child, got %v", err)
	}
	if _, err := fx.service.LinkPlayer(ctx, "coach", "p1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for manager, got %v", err)
	}
	if _, err := fx.service.LinkPlayer(ctx, "mum", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := fx.service.UnlinkPlayer(ctx, "mum", "p2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unlinking another parent's child, got %v", err)
	}

	parent, err = fx.service.UnlinkPlayer(ctx, "mum", "p1")
	if err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if len(parent.ParentOf) != 0 {
		t.Fatalf("expected empty parent_of, got %v", parent.ParentOf)
	}
	unlinked, _, _ := fx.players.GetByID(ctx, "p1")
	if unlinked.ParentID != "" {
		t.Fatalf("expected player unlinked, got %q", unlinked.ParentID)
	}
}
