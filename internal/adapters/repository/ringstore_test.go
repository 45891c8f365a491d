package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/pawsense/internal/adapters/repository"
	"github.com/okian/pawsense/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// snapshotAt builds a distinguishable snapshot; BPM doubles as a sequence
// marker in assertions.
func snapshotAt(seq int) model.AdaptationParameters {
	return model.AdaptationParameters{
		AudioBPM:    seq,
		Phase:       "initial",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, seq, 0, time.UTC),
	}
}

func TestRingStore(t *testing.T) {
	Convey("Given a ring store with a small per-session bound", t, func() {
		ctx := context.Background()
		s := repository.NewRingStore(ctx,
			repository.WithHistoryCap(3),
			repository.WithShardCount(4),
		)

		Convey("When a session has no snapshots", func() {
			_, err := s.Latest(ctx, "missing")

			Convey("Then Latest should report ErrNotFound", func() {
				So(err, ShouldEqual, repository.ErrNotFound)
				So(s.Recent(ctx, "missing", 10), ShouldBeNil)
			})
		})

		Convey("When snapshots are appended within the bound", func() {
			s.Append(ctx, "a", snapshotAt(1))
			s.Append(ctx, "a", snapshotAt(2))

			Convey("Then Latest should return the newest", func() {
				p, err := s.Latest(ctx, "a")
				So(err, ShouldBeNil)
				So(p.AudioBPM, ShouldEqual, 2)
			})

			Convey("And Recent should order newest first", func() {
				recent := s.Recent(ctx, "a", 0)
				So(len(recent), ShouldEqual, 2)
				So(recent[0].AudioBPM, ShouldEqual, 2)
				So(recent[1].AudioBPM, ShouldEqual, 1)
			})
		})

		Convey("When more snapshots arrive than the bound allows", func() {
			for i := 1; i <= 7; i++ {
				s.Append(ctx, "a", snapshotAt(i))
			}

			Convey("Then only the newest entries should survive", func() {
				recent := s.Recent(ctx, "a", 0)
				So(len(recent), ShouldEqual, 3)
				So(recent[0].AudioBPM, ShouldEqual, 7)
				So(recent[1].AudioBPM, ShouldEqual, 6)
				So(recent[2].AudioBPM, ShouldEqual, 5)
			})

			Convey("And a limit should truncate from the newest end", func() {
				recent := s.Recent(ctx, "a", 2)
				So(len(recent), ShouldEqual, 2)
				So(recent[0].AudioBPM, ShouldEqual, 7)
			})
		})

		Convey("When a session is cleared", func() {
			s.Append(ctx, "a", snapshotAt(1))
			s.Clear(ctx, "a")

			Convey("Then it should be empty but addressable", func() {
				_, err := s.Latest(ctx, "a")
				So(err, ShouldEqual, repository.ErrNotFound)
				So(s.Count(ctx), ShouldEqual, 0)

				s.Append(ctx, "a", snapshotAt(9))
				p, err := s.Latest(ctx, "a")
				So(err, ShouldBeNil)
				So(p.AudioBPM, ShouldEqual, 9)
			})
		})

		Convey("When a session is dropped", func() {
			s.Append(ctx, "a", snapshotAt(1))
			s.Append(ctx, "b", snapshotAt(2))
			s.Drop(ctx, "a")

			Convey("Then only the dropped session should disappear", func() {
				_, err := s.Latest(ctx, "a")
				So(err, ShouldEqual, repository.ErrNotFound)

				p, err := s.Latest(ctx, "b")
				So(err, ShouldBeNil)
				So(p.AudioBPM, ShouldEqual, 2)
				So(s.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When sessions land on different shards", func() {
			for i := 0; i < 32; i++ {
				s.Append(ctx, fmt.Sprintf("session-%d", i), snapshotAt(i))
			}

			Convey("Then every session should stay independently readable", func() {
				So(s.Count(ctx), ShouldEqual, 32)
				for i := 0; i < 32; i++ {
					p, err := s.Latest(ctx, fmt.Sprintf("session-%d", i))
					So(err, ShouldBeNil)
					So(p.AudioBPM, ShouldEqual, i)
				}
			})
		})
	})

	Convey("Given concurrent writers on one store", t, func() {
		ctx := context.Background()
		s := repository.NewRingStore(ctx, repository.WithHistoryCap(8))

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				id := fmt.Sprintf("session-%d", g%4)
				for i := 0; i < 50; i++ {
					s.Append(ctx, id, snapshotAt(i))
				}
			}(g)
		}
		wg.Wait()

		Convey("Then the store should stay bounded and consistent", func() {
			total := 0
			for g := 0; g < 4; g++ {
				recent := s.Recent(ctx, fmt.Sprintf("session-%d", g), 0)
				So(len(recent), ShouldBeLessThanOrEqualTo, 8)
				total += len(recent)
			}
			So(s.Count(ctx), ShouldEqual, total)
		})
	})
}
