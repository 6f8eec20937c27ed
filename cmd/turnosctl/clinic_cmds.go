package main

import (
	"fmt"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/domain/model"
)

const availablePageSize = 20

// openLoggedIn opens the stored session and fails when nobody is logged in.
func openLoggedIn(cmdCtx *commandContext, common commonFlags) (*cliSession, domainauth.Session, error) {
	sess, err := openSession(cmdCtx, common.sessionFile)
	if err != nil {
		return nil, domainauth.Session{}, err
	}
	current, err := sess.requireLogin()
	if err != nil {
		return nil, current, err
	}
	return sess, current, nil
}

func requireID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: -%s must be a positive id", errUsage, name)
	}
	return nil
}

func runProfessionals(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "professionals", &common)
	specialty := fs.String("especialidad", "", "Only list professionals with this specialty")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	sess, _, err := openLoggedIn(cmdCtx, common)
	if err != nil {
		return err
	}
	list, err := sess.clinic.ListProfessionals(cmdCtx.Ctx)
	if err != nil {
		return sess.apiErr(err)
	}
	return emit(cmdCtx.Stdout, common.query, model.FilterBySpecialty(list, *specialty))
}

type agendasOutput struct {
	Current []model.Agenda `json:"current"`
	Past    []model.Agenda `json:"past"`
}

func runAgendas(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "agendas", &common)
	professional := fs.Int64("profesional", 0, "Professional id; defaults to your own for professionals")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	sess, current, err := openLoggedIn(cmdCtx, common)
	if err != nil {
		return err
	}
	pid := *professional
	if pid == 0 && current.Identity.ProfessionalID != nil {
		pid = *current.Identity.ProfessionalID
	}
	if err := requireID("profesional", pid); err != nil {
		return err
	}
	list, err := sess.clinic.ListAgendas(cmdCtx.Ctx, pid)
	if err != nil {
		return sess.apiErr(err)
	}
	cur, past := model.SplitAgendas(list, cmdCtx.Now())
	return emit(cmdCtx.Stdout, common.query, agendasOutput{Current: nonNil(cur), Past: nonNil(past)})
}

type availableOutput struct {
	Count   int                 `json:"count"`
	HasNext bool                `json:"has_next"`
	Page    int                 `json:"page"`
	Results []model.Appointment `json:"results"`
}

func runAppointments(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "appointments", &common)
	agenda := fs.Int64("agenda", 0, "List every slot of this agenda")
	mine := fs.Bool("mine", false, "List your own appointments")
	professional := fs.Int64("profesional", 0, "Filter available slots by professional")
	page := fs.Int("page", 1, "Page of available slots")
	filter := fs.String("filtro", "", "TODOS, DISPONIBLES, RESERVADOS, ASISTIO, NO_ASISTIO, CANCELADO or PROXIMOS")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *page < 1 {
		return fmt.Errorf("%w: -page must be at least 1", errUsage)
	}
	sess, _, err := openLoggedIn(cmdCtx, common)
	if err != nil {
		return err
	}

	var list []model.Appointment
	switch {
	case *agenda > 0:
		list, err = sess.clinic.AgendaAppointments(cmdCtx.Ctx, *agenda)
	case *mine:
		list, err = sess.clinic.MyAppointments(cmdCtx.Ctx)
	default:
		res, listErr := sess.clinic.ListAppointments(cmdCtx.Ctx, model.AppointmentQuery{
			ProfessionalID: *professional,
			Status:         model.AppointmentAvailable,
			Page:           *page,
			PageSize:       availablePageSize,
		})
		if listErr != nil {
			return sess.apiErr(listErr)
		}
		return emit(cmdCtx.Stdout, common.query, availableOutput{
			Count:   res.Count,
			HasNext: res.Next != nil,
			Page:    *page,
			Results: nonNil(res.Results),
		})
	}
	if err != nil {
		return sess.apiErr(err)
	}
	f := model.ParseAppointmentFilter(*filter)
	return emit(cmdCtx.Stdout, common.query, nonNil(model.FilterAppointments(list, f, cmdCtx.Now())))
}

func runReserve(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "reserve", &common)
	id := fs.Int64("id", 0, "Appointment id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID("id", *id); err != nil {
		return err
	}
	sess, _, err := openLoggedIn(cmdCtx, common)
	if err != nil {
		return err
	}
	appt, err := sess.clinic.ReserveAppointment(cmdCtx.Ctx, *id)
	if err != nil {
		return sess.apiErr(err)
	}
	return emit(cmdCtx.Stdout, common.query, appt)
}

func runCancel(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "cancel", &common)
	id := fs.Int64("id", 0, "Appointment id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID("id", *id); err != nil {
		return err
	}
	sess, _, err := openLoggedIn(cmdCtx, common)
	if err != nil {
		return err
	}
	if err := sess.clinic.CancelAppointment(cmdCtx.Ctx, *id); err != nil {
		return sess.apiErr(err)
	}
	return emit(cmdCtx.Stdout, common.query, map[string]any{"id": *id, "status": "cancelled"})
}

func runAbsences(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "absences", &common)
	mine := fs.Bool("mine", false, "List your own absences")
	status := fs.String("estado", "", "PENDIENTE, JUSTIFICADA, INJUSTIFICADA or TODAS")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	st, ok := model.ParseJustificationStatus(*status)
	if !ok {
		return fmt.Errorf("%w: unknown -estado %q", errUsage, *status)
	}
	sess, _, err := openLoggedIn(cmdCtx, common)
	if err != nil {
		return err
	}
	var list []model.Absence
	if *mine {
		list, err = sess.clinic.MyAbsences(cmdCtx.Ctx)
	} else {
		list, err = sess.clinic.ListAbsences(cmdCtx.Ctx)
	}
	if err != nil {
		return sess.apiErr(err)
	}
	return emit(cmdCtx.Stdout, common.query, nonNil(model.FilterAbsences(list, st)))
}

func runJustify(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "justify", &common)
	id := fs.Int64("id", 0, "Absence id")
	text := fs.String("texto", "", "Justification text")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID("id", *id); err != nil {
		return err
	}
	justification, err := model.ValidateJustification(*text)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	sess, _, err := openLoggedIn(cmdCtx, common)
	if err != nil {
		return err
	}
	absence, err := sess.clinic.JustifyAbsence(cmdCtx.Ctx, *id, justification)
	if err != nil {
		return sess.apiErr(err)
	}
	return emit(cmdCtx.Stdout, common.query, absence)
}

func runEvaluate(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "evaluate", &common)
	id := fs.Int64("id", 0, "Absence id")
	action := fs.String("accion", "", "APROBAR or RECHAZAR")
	note := fs.String("nota", "", "Optional note for the patient")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID("id", *id); err != nil {
		return err
	}
	act, err := model.ParseEvaluateAction(*action)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	ev := model.Evaluation{Action: act, Note: *note}
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	sess, _, err := openLoggedIn(cmdCtx, common)
	if err != nil {
		return err
	}
	absence, err := sess.clinic.EvaluateAbsence(cmdCtx.Ctx, *id, ev)
	if err != nil {
		return sess.apiErr(err)
	}
	return emit(cmdCtx.Stdout, common.query, absence)
}

func runReport(cmdCtx *commandContext, args []string) error {
	var common commonFlags
	fs := newFlagSet(cmdCtx, "report", &common)
	professional := fs.Int64("profesional", 0, "Report for a professional")
	patient := fs.Int64("paciente", 0, "Report for a patient")
	agenda := fs.Int64("agenda", 0, "Report for an agenda")
	global := fs.Bool("global", false, "Clinic-wide report")
	history := fs.Bool("historial", false, "Your appointment history")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	for name, v := range map[string]int64{"profesional": *professional, "paciente": *patient, "agenda": *agenda} {
		if v < 0 {
			return fmt.Errorf("%w: -%s must be a positive id", errUsage, name)
		}
	}
	sess, current, err := openLoggedIn(cmdCtx, common)
	if err != nil {
		return err
	}

	ctx := cmdCtx.Ctx
	var out any
	switch {
	case *global:
		out, err = sess.clinic.GlobalReport(ctx)
	case *professional > 0:
		out, err = sess.clinic.ProfessionalReport(ctx, *professional)
	case *patient > 0:
		out, err = sess.clinic.PatientReport(ctx, *patient)
	case *agenda > 0:
		out, err = sess.clinic.AgendaReport(ctx, *agenda)
	case *history:
		var list []model.Appointment
		list, err = sess.clinic.MyHistory(ctx)
		out = nonNil(list)
	default:
		out, err = defaultReport(cmdCtx, sess, current)
	}
	if err != nil {
		return sess.apiErr(err)
	}
	return emit(cmdCtx.Stdout, common.query, out)
}

// defaultReport picks the report a role sees on its dashboard.
func defaultReport(cmdCtx *commandContext, sess *cliSession, current domainauth.Session) (any, error) {
	switch current.Role() {
	case domainauth.RoleAdmin:
		return sess.clinic.GlobalReport(cmdCtx.Ctx)
	case domainauth.RoleProfessional:
		if current.Identity.ProfessionalID == nil {
			return nil, fmt.Errorf("%w: -profesional is required", errUsage)
		}
		return sess.clinic.ProfessionalReport(cmdCtx.Ctx, *current.Identity.ProfessionalID)
	default:
		return sess.clinic.MyReport(cmdCtx.Ctx)
	}
}

// nonNil keeps empty listings printing as [] instead of null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
