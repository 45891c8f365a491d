package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/pawsense/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeduper(t *testing.T) {
	Convey("Given a new deduper", t, func() {
		ctx := context.Background()

		Convey("When creating with default options", func() {
			d := dedupe.NewDeduper()

			Convey("Then it should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording sample ids", func() {
			d := dedupe.NewDeduper()

			Convey("And the id is new", func() {
				seen := d.SeenAndRecord(ctx, "sample-1")

				Convey("Then it should return false and record the id", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the id was already seen", func() {
				d.SeenAndRecord(ctx, "sample-1")
				seen := d.SeenAndRecord(ctx, "sample-1")

				Convey("Then it should return true without growing", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})
		})

		Convey("When an id is unrecorded", func() {
			d := dedupe.NewDeduper()
			d.SeenAndRecord(ctx, "sample-1")
			d.Unrecord(ctx, "sample-1")

			Convey("Then the id should count as new again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "sample-1"), ShouldBeFalse)
			})
		})

		Convey("When an unrecorded id is recorded again", func() {
			d := dedupe.NewDeduper(dedupe.WithMaxSize(2))
			d.SeenAndRecord(ctx, "sample-1")
			d.Unrecord(ctx, "sample-1")
			d.SeenAndRecord(ctx, "sample-1")
			d.SeenAndRecord(ctx, "sample-2")

			Convey("Then reclaiming its old slot should not evict the re-record", func() {
				So(d.Size(), ShouldEqual, 2)
				So(d.SeenAndRecord(ctx, "sample-1"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "sample-2"), ShouldBeTrue)
			})
		})

		Convey("When more ids arrive than the bound allows", func() {
			d := dedupe.NewDeduper(dedupe.WithMaxSize(3))
			for i := 0; i < 5; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("sample-%d", i))
			}

			Convey("Then the oldest ids should have been evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "sample-0"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "sample-4"), ShouldBeTrue)
			})
		})

		Convey("When many goroutines record the same id", func() {
			d := dedupe.NewDeduper()
			const goroutines = 32

			var wg sync.WaitGroup
			firsts := make(chan bool, goroutines)
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(ctx, "contended") {
						firsts <- true
					}
				}()
			}
			wg.Wait()
			close(firsts)

			Convey("Then exactly one should win the first-record race", func() {
				So(len(firsts), ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}
