package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/semmidev/mongorotate/internal/adapter/storage"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPrune(t *testing.T) {
	Convey("Given three backups", t, func() {
		ctx := context.Background()
		store := newMemoryStore(
			"b-2024-01-02-00-00-00",
			"b-2024-01-01-00-00-00",
			"b-2024-01-03-00-00-00",
		)
		log := &recordingLogger{}
		uc := NewPrune(store, log, false)

		Convey("GetOldestBackups with keep=2", func() {
			oldest, err := uc.GetOldestBackups(ctx, 2)

			Convey("It should return only the oldest one", func() {
				So(err, ShouldBeNil)
				So(oldest, ShouldResemble, []string{"b-2024-01-01-00-00-00"})
			})
		})

		Convey("GetOldestBackups with keep=0", func() {
			oldest, err := uc.GetOldestBackups(ctx, 0)

			Convey("It should return all of them newest first", func() {
				So(err, ShouldBeNil)
				So(oldest, ShouldResemble, []string{
					"b-2024-01-03-00-00-00",
					"b-2024-01-02-00-00-00",
					"b-2024-01-01-00-00-00",
				})
			})
		})

		Convey("GetOldestBackups with a negative keep", func() {
			_, err := uc.GetOldestBackups(ctx, -1)

			Convey("It should be rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("Execute with keep=2", func() {
			err := uc.Execute(ctx, 2)

			Convey("It should delete exactly the oldest backup", func() {
				So(err, ShouldBeNil)
				So(store.deleted, ShouldResemble, []string{"b-2024-01-01-00-00-00"})
				So(store.names, ShouldHaveLength, 2)
			})

			Convey("Running it again should be a no-op", func() {
				err := uc.Execute(ctx, 2)
				So(err, ShouldBeNil)
				So(store.deleted, ShouldHaveLength, 1)
			})
		})

		Convey("Execute with keep >= number of backups", func() {
			err := uc.Execute(ctx, 3)
			So(err, ShouldBeNil)
			So(store.deleted, ShouldBeEmpty)

			err = uc.Execute(ctx, 10)
			So(err, ShouldBeNil)
			So(store.deleted, ShouldBeEmpty)
		})

		Convey("When listing fails", func() {
			store.listErr = errors.New("permission denied")
			err := uc.Execute(ctx, 1)

			Convey("It should return the error without deleting", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "permission denied")
				So(store.deleted, ShouldBeEmpty)
			})
		})

		Convey("When a deletion fails", func() {
			store.deleteErr["b-2024-01-02-00-00-00"] = errors.New("busy")

			Convey("By default it should abort the remaining deletions", func() {
				err := uc.Execute(ctx, 0)

				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "busy")
				So(store.deleted, ShouldResemble, []string{"b-2024-01-03-00-00-00"})
				So(store.names, ShouldContain, "b-2024-01-01-00-00-00")
			})

			Convey("With continueOnError it should attempt every deletion", func() {
				uc := NewPrune(store, log, true)
				err := uc.Execute(ctx, 0)

				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "remove b-2024-01-02-00-00-00: busy")
				So(store.deleted, ShouldResemble, []string{
					"b-2024-01-03-00-00-00",
					"b-2024-01-01-00-00-00",
				})
				So(log.errors, ShouldHaveLength, 1)
			})
		})

		Convey("When the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			err := uc.Execute(cancelled, 0)

			Convey("It should stop before deleting", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(store.deleted, ShouldBeEmpty)
			})
		})
	})

	Convey("Given backup directories on disk", t, func() {
		tempDir, err := os.MkdirTemp("", "prune_test")
		So(err, ShouldBeNil)
		defer os.RemoveAll(tempDir)

		for _, name := range []string{"b-2024-01-01-00-00-00", "b-2024-01-02-00-00-00", "b-2024-01-03-00-00-00", ".lock"} {
			So(os.MkdirAll(filepath.Join(tempDir, name, "shop"), 0755), ShouldBeNil)
		}

		local, err := storage.NewLocal(tempDir)
		So(err, ShouldBeNil)
		uc := NewPrune(local, &recordingLogger{}, false)

		Convey("Execute with keep=2 should remove exactly the oldest directory", func() {
			So(uc.Execute(context.Background(), 2), ShouldBeNil)

			entries, err := os.ReadDir(tempDir)
			So(err, ShouldBeNil)

			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			So(names, ShouldResemble, []string{".lock", "b-2024-01-02-00-00-00", "b-2024-01-03-00-00-00"})
		})
	})
}
