package repo

import (
	"time"

	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/cyra-app/cyra/internal/models"
)

// Record <-> field-value conversion lives here, at the store-adapter
// boundary. Services operate on native dates, integers and strings only.

func encodeProfile(profile models.UserProfile) docstore.Fields {
	fields := docstore.Fields{
		models.FieldFullName:    docstore.String(profile.FullName),
		models.FieldEmail:       docstore.String(profile.Email),
		models.FieldCycleLength: docstore.Integer(int64(profile.CycleLength)),
		models.FieldCreatedAt:   docstore.Timestamp(profile.CreatedAt),
	}
	fields[models.FieldLastPeriodStart] = optionalTimestamp(profile.LastPeriodStart)
	fields[models.FieldLastPeriodEnd] = optionalTimestamp(profile.LastPeriodEnd)
	if profile.PeriodLength > 0 {
		fields[models.FieldPeriodLength] = docstore.Integer(int64(profile.PeriodLength))
	}
	return fields
}

func decodeProfile(uid string, fields docstore.Fields) models.UserProfile {
	profile := models.UserProfile{UID: uid}
	profile.FullName = stringField(fields, models.FieldFullName)
	profile.Email = stringField(fields, models.FieldEmail)
	profile.CycleLength = intField(fields, models.FieldCycleLength)
	profile.PeriodLength = intField(fields, models.FieldPeriodLength)
	profile.LastPeriodStart = timeField(fields, models.FieldLastPeriodStart)
	profile.LastPeriodEnd = timeField(fields, models.FieldLastPeriodEnd)
	if created := timeField(fields, models.FieldCreatedAt); created != nil {
		profile.CreatedAt = *created
	}
	return profile
}

func encodePeriodRecord(record models.PeriodRecord) docstore.Fields {
	fields := docstore.Fields{
		models.FieldStartDate: optionalTimestamp(record.StartDate),
		models.FieldEndDate:   optionalTimestamp(record.EndDate),
		models.FieldNotes:     encodeNotes(record.Notes),
	}
	if record.PeriodLength != nil {
		fields[models.FieldPeriodLength] = docstore.Integer(int64(*record.PeriodLength))
	} else {
		fields[models.FieldPeriodLength] = docstore.Null()
	}
	return fields
}

func decodePeriodRecord(fields docstore.Fields) models.PeriodRecord {
	record := models.EmptyPeriodRecord()
	record.StartDate = timeField(fields, models.FieldStartDate)
	record.EndDate = timeField(fields, models.FieldEndDate)
	if length := intField(fields, models.FieldPeriodLength); length > 0 {
		record.PeriodLength = &length
	}
	record.Notes = decodeNotes(fields)
	return record
}

func encodePredictionRecord(record models.PredictionRecord) docstore.Fields {
	return docstore.Fields{
		models.FieldPredictedStart:  docstore.Timestamp(record.PredictedStart),
		models.FieldPredictedEnd:    docstore.Timestamp(record.PredictedEnd),
		models.FieldCreatedAt:       docstore.Timestamp(record.CreatedAt),
		models.FieldPredIsConfirmed: docstore.Boolean(record.IsConfirmed),
	}
}

func decodePredictionRecord(fields docstore.Fields) models.PredictionRecord {
	record := models.PredictionRecord{Notes: decodeNotes(fields)}
	if start := timeField(fields, models.FieldPredictedStart); start != nil {
		record.PredictedStart = *start
	}
	if end := timeField(fields, models.FieldPredictedEnd); end != nil {
		record.PredictedEnd = *end
	}
	if created := timeField(fields, models.FieldCreatedAt); created != nil {
		record.CreatedAt = *created
	}
	if confirmed, ok := fields[models.FieldPredIsConfirmed].BooleanValue(); ok {
		record.IsConfirmed = confirmed
	}
	return record
}

func encodeLoginRecord(record models.LoginRecord) docstore.Fields {
	return docstore.Fields{
		models.FieldLoginUID:          docstore.String(record.UID),
		models.FieldLoginPasswordHash: docstore.String(record.PasswordHash),
		models.FieldCreatedAt:         docstore.Timestamp(record.CreatedAt),
	}
}

func decodeLoginRecord(fields docstore.Fields) models.LoginRecord {
	record := models.LoginRecord{
		UID:          stringField(fields, models.FieldLoginUID),
		PasswordHash: stringField(fields, models.FieldLoginPasswordHash),
	}
	if created := timeField(fields, models.FieldCreatedAt); created != nil {
		record.CreatedAt = *created
	}
	return record
}

func encodeNotes(notes map[string]string) docstore.Value {
	fields := make(docstore.Fields, len(notes))
	for date, text := range notes {
		fields[date] = docstore.String(text)
	}
	return docstore.Map(fields)
}

func decodeNotes(fields docstore.Fields) map[string]string {
	notes := map[string]string{}
	nested, ok := fields[models.FieldNotes].MapValue()
	if !ok {
		return notes
	}
	for date, value := range nested {
		text, _ := value.StringValue()
		notes[date] = text
	}
	return notes
}

func optionalTimestamp(value *time.Time) docstore.Value {
	if value == nil {
		return docstore.Null()
	}
	return docstore.Timestamp(*value)
}

func stringField(fields docstore.Fields, name string) string {
	value, _ := fields[name].StringValue()
	return value
}

func intField(fields docstore.Fields, name string) int {
	value, _ := fields[name].IntegerValue()
	return int(value)
}

func timeField(fields docstore.Fields, name string) *time.Time {
	value, ok := fields[name].TimestampValue()
	if !ok {
		return nil
	}
	return &value
}
