package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/pawsense/internal/adapters/mq/queue"
	"github.com/okian/pawsense/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleFor(id string) queue.Sample {
	return model.FeedbackSample{
		SampleID:  id,
		SessionID: "session-1",
		Metrics:   model.StressMetrics{Level: model.StressModerate, MovementRate: 0.5},
		TS:        time.Now(),
	}
}

func TestInMemoryQueue(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		ctx := context.Background()

		Convey("When enqueuing within capacity", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))

			ok := q.Enqueue(ctx, sampleFor("s1"))

			Convey("Then the sample should be accepted", func() {
				So(ok, ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the queue is full", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(2))
			So(q.Enqueue(ctx, sampleFor("s1")), ShouldBeTrue)
			So(q.Enqueue(ctx, sampleFor("s2")), ShouldBeTrue)

			ok := q.Enqueue(ctx, sampleFor("s3"))

			Convey("Then further samples should be rejected without blocking", func() {
				So(ok, ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 2)
			})
		})

		Convey("When dequeuing", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			q.Enqueue(ctx, sampleFor("s1"))
			q.Enqueue(ctx, sampleFor("s2"))

			out := q.Dequeue(ctx)

			Convey("Then samples should arrive in FIFO order", func() {
				first := <-out
				second := <-out
				So(first.SampleID, ShouldEqual, "s1")
				So(second.SampleID, ShouldEqual, "s2")
			})
		})

		Convey("When the queue is closed", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			q.Enqueue(ctx, sampleFor("s1"))
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueue should be rejected", func() {
				So(q.Enqueue(ctx, sampleFor("s2")), ShouldBeFalse)
				So(q.IsClosed(), ShouldBeTrue)
			})

			Convey("And the dequeue channel should drain and close", func() {
				out := q.Dequeue(ctx)
				s, open := <-out
				So(open, ShouldBeTrue)
				So(s.SampleID, ShouldEqual, "s1")

				_, open = <-out
				So(open, ShouldBeFalse)
			})

			Convey("And closing again should be a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}
