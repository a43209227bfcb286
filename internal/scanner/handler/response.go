package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

func encodeReport(e *jx.Encoder, report *models.RunReport) {
	errs := report.Errors()

	report.Update(func(r *models.RunReport) {
		e.ObjStart()

		e.FieldStart("startedAt")
		e.Str(r.StartedAt.Format(time.RFC3339Nano))

		e.FieldStart("finishedAt")
		e.Str(r.FinishedAt.Format(time.RFC3339Nano))

		for _, field := range []struct {
			name  string
			value int
		}{
			{"posts", r.Posts},
			{"skippedPosts", r.SkippedPosts},
			{"candidates", r.Candidates},
			{"validLinks", r.ValidLinks},
			{"invalidLinks", r.InvalidLinks},
			{"confirmedGifts", r.ConfirmedGifts},
			{"notifications", r.Notifications},
		} {
			e.FieldStart(field.name)
			e.Int(field.value)
		}

		e.FieldStart("deadlineReached")
		e.Bool(r.DeadlineReached)

		e.FieldStart("errors")
		e.ArrStart()

		for _, err := range errs {
			e.Str(err.Error())
		}

		e.ArrEnd()

		e.ObjEnd()
	})
}

func writeReport(w http.ResponseWriter, report *models.RunReport) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	encodeReport(e, report)
	writeJSON(w, http.StatusOK, e.Bytes())
}

func writeError(w http.ResponseWriter, status int, description string, err error) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.ObjStart()
	e.FieldStart("description")
	e.Str(description)

	if err != nil {
		e.FieldStart("exceptionMessage")
		e.Str(err.Error())
	}

	e.ObjEnd()

	writeJSON(w, status, e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
