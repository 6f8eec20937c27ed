package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgendaInput_Validate(t *testing.T) {
	valid := AgendaInput{
		ProfessionalID: 1,
		Month:          "2024-07-01",
		StartTime:      "08:00",
		EndTime:        "12:00:00",
		SlotMinutes:    30,
		UnavailableDays: []string{
			"2024-07-09",
		},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*AgendaInput)
		want   string
	}{
		{"missing professional", func(in *AgendaInput) { in.ProfessionalID = 0 }, "profesional"},
		{"not first day", func(in *AgendaInput) { in.Month = "2024-07-02" }, "first day"},
		{"bad month", func(in *AgendaInput) { in.Month = "julio" }, "mes"},
		{"end before start", func(in *AgendaInput) { in.EndTime = "07:00" }, "after"},
		{"zero slot", func(in *AgendaInput) { in.SlotMinutes = 0 }, "duracion_turno"},
		{"bad day", func(in *AgendaInput) { in.UnavailableDays = []string{"9/7"} }, "dias_no_disponibles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.UnavailableDays = append([]string(nil), valid.UnavailableDays...)
			tt.mutate(&in)
			err := in.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSplitAgendas(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	list := []Agenda{
		{ID: 1, Month: "2024-06-01"},
		{ID: 2, Month: "2024-07-01"},
		{ID: 3, Month: "2024-08-01"},
		{ID: 4, Month: "?"},
	}
	current, past := SplitAgendas(list, now)

	require.Len(t, past, 1)
	assert.Equal(t, int64(1), past[0].ID)
	assert.Len(t, current, 3)
}

func TestProfessionalInput_Validate(t *testing.T) {
	in := ProfessionalInput{
		LicenseNumber: " MP-123 ",
		Specialty:     "Clínica",
		AttentionDays: []string{" Lunes", "MIERCOLES"},
		SlotMinutes:   20,
	}
	in.Normalize()
	assert.Equal(t, "MP-123", in.LicenseNumber)
	assert.Equal(t, []string{"lunes", "miercoles"}, in.AttentionDays)
	require.NoError(t, in.Validate(false))

	err := in.Validate(true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")

	in.AttentionDays = []string{"feriado"}
	assert.Error(t, in.Validate(false))
}

func TestSpecialtiesAndFilter(t *testing.T) {
	list := []Professional{
		{ID: 1, Specialty: "Pediatría"},
		{ID: 2, Specialty: "Clínica"},
		{ID: 3, Specialty: "Pediatría"},
		{ID: 4},
	}
	assert.Equal(t, []string{"Pediatría", "Clínica"}, Specialties(list))
	assert.Len(t, FilterBySpecialty(list, "Pediatría"), 2)
	assert.Len(t, FilterBySpecialty(list, ""), 4)
}

func TestPatientRegistration_Validate(t *testing.T) {
	r := PatientRegistration{
		DNI:       "30111222",
		Password:  "secret",
		FullName:  "Ana Gómez",
		BirthDate: "1990-02-03",
	}
	require.NoError(t, r.Validate())

	long := r
	long.DNI = "123456789"
	assert.Error(t, long.Validate())

	noDate := r
	noDate.BirthDate = "03/02/1990"
	assert.Error(t, noDate.Validate())
}
