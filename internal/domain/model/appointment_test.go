package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func sampleAppointments() []Appointment {
	return []Appointment{
		{ID: 1, Date: "2024-05-10", Status: AppointmentAvailable},
		{ID: 2, Date: "2024-05-09", Status: AppointmentReserved, PatientID: int64Ptr(7)},
		{ID: 3, Date: "2024-05-11", Status: AppointmentReserved, PatientID: int64Ptr(7)},
		{ID: 4, Date: "2024-05-01", Status: AppointmentAttended, PatientID: int64Ptr(7)},
		{ID: 5, Date: "2024-05-02", Status: AppointmentNoShow, PatientID: int64Ptr(8)},
		{ID: 6, Date: "2024-05-03", Status: AppointmentCancelled},
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	st, ok := ParseAppointmentStatus(" reservado ")
	assert.True(t, ok)
	assert.Equal(t, AppointmentReserved, st)

	_, ok = ParseAppointmentStatus("LIBRE")
	assert.False(t, ok)
}

func TestParseAppointmentFilter(t *testing.T) {
	assert.Equal(t, FilterUpcoming, ParseAppointmentFilter("proximos"))
	assert.Equal(t, FilterAll, ParseAppointmentFilter(""))
	assert.Equal(t, FilterAll, ParseAppointmentFilter("whatever"))
}

func TestFilterAppointments(t *testing.T) {
	today := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)
	list := sampleAppointments()

	ids := func(in []Appointment) []int64 {
		out := make([]int64, 0, len(in))
		for _, a := range in {
			out = append(out, a.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids(FilterAppointments(list, FilterAll, today)))
	assert.Equal(t, []int64{2, 3}, ids(FilterAppointments(list, FilterReserved, today)))
	assert.Equal(t, []int64{3}, ids(FilterAppointments(list, FilterUpcoming, today)))
	assert.Equal(t, []int64{5}, ids(FilterAppointments(list, FilterNoShow, today)))
	assert.Empty(t, FilterAppointments(nil, FilterCancelled, today))
}

func TestCountAppointments(t *testing.T) {
	today := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	counts := CountAppointments(sampleAppointments(), today)

	assert.Equal(t, 6, counts[FilterAll])
	assert.Equal(t, 1, counts[FilterAvailable])
	assert.Equal(t, 2, counts[FilterReserved])
	assert.Equal(t, 2, counts[FilterUpcoming])
	assert.Equal(t, 1, counts[FilterAttended])
	assert.Equal(t, 1, counts[FilterNoShow])
	assert.Equal(t, 1, counts[FilterCancelled])
}

func TestAppointmentWorkflowPredicates(t *testing.T) {
	withPatient := Appointment{Status: AppointmentScheduled, PatientID: int64Ptr(1)}
	assert.True(t, CanMarkNoShow(withPatient))
	assert.False(t, CanCancel(withPatient))

	withPatient.Status = AppointmentReserved
	assert.True(t, CanMarkNoShow(withPatient))
	assert.True(t, CanCancel(withPatient))

	free := Appointment{Status: AppointmentAvailable}
	assert.True(t, CanReserve(free))
	assert.False(t, CanMarkNoShow(free))

	free.Status = AppointmentReserved
	assert.False(t, CanMarkNoShow(free), "no patient assigned")
}

func TestAppointment_DecodeAPIPayload(t *testing.T) {
	payload := `{"id":12,"fecha":"2024-06-03","hora_inicio":"09:00:00","hora_fin":"09:30:00",
		"estado":"RESERVADO","paciente_id":4,"paciente_nombre":"Ana","agenda":3,
		"profesional_nombre":"Dr. Paz","estado_justificacion":"PENDIENTE"}`

	var a Appointment
	require.NoError(t, json.Unmarshal([]byte(payload), &a))
	assert.Equal(t, int64(12), a.ID)
	assert.Equal(t, AppointmentReserved, a.Status)
	require.NotNil(t, a.PatientID)
	assert.Equal(t, int64(4), *a.PatientID)
	require.NotNil(t, a.AgendaID)
	assert.Equal(t, int64(3), *a.AgendaID)
	assert.Equal(t, JustificationPending, a.JustificationStatus)
}

func TestReportFromAppointments(t *testing.T) {
	r := ReportFromAppointments(sampleAppointments())

	// Available slots are not counted.
	assert.Equal(t, 5, r.Total)
	assert.Equal(t, 1, r.Attended)
	assert.Equal(t, 1, r.NoShows)
	assert.Equal(t, 1, r.Cancelled)
	assert.InDelta(t, 20.0, r.AttendanceRate, 0.001)
	assert.InDelta(t, 20.0, r.CancellationRate, 0.001)

	empty := ReportFromAppointments(nil)
	assert.Zero(t, empty.AttendanceRate)
}

func TestGlobalReport_Decode(t *testing.T) {
	payload := `{"total_turnos":3,"asistidos":2,"inasistencias":1,"cancelados":0,
		"porcentaje_asistencia":66.67,"porcentaje_inasistencia":33.33,"porcentaje_cancelados":0,
		"justificaciones":{"pendientes":1,"aceptadas":0,"rechazadas":0}}`

	var g GlobalReport
	require.NoError(t, json.Unmarshal([]byte(payload), &g))
	assert.Equal(t, 3, g.Total)
	assert.InDelta(t, 66.67, g.AttendanceRate, 0.001)
	assert.Equal(t, 1, g.Justifications.Pending)
}
