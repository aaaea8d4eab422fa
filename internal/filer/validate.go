package filer

import (
	"github.com/joseph-ayodele/report-filer/internal/common"
	"github.com/joseph-ayodele/report-filer/internal/extract"
)

// maxPatientName keeps generated file names well under filesystem limits.
const maxPatientName = 120

// ValidateRecord requires all six fields to be non-blank.
func ValidateRecord(rec extract.Record) error {
	v := common.NewValidator().
		Field("Patient Name", rec.PatientName, common.Required, common.MaxLength(maxPatientName)).
		Field("Creation Date", rec.CreationDate, common.Required).
		Field("Transcription Date", rec.TranscriptionDate, common.Required).
		Field("Transcriber", rec.Transcriber, common.Required).
		Field("Exam Type", rec.ExamType, common.Required).
		Field("Doctor", rec.Doctor, common.Required)
	if err := v.Error(); err != nil {
		return common.NewAppError("MISSING_FIELD", "extracted record is incomplete", err)
	}
	return nil
}
