package directive

import (
	"log/slog"
	"strconv"

	"github.com/cx-tal-miterani/ticket-admission/internal/admission"
	"github.com/cx-tal-miterani/ticket-admission/shared/models"
)

// Outcome is the result of executing one directive. Result holds the typed
// engine payload on success; Lines is what gets written out either way.
type Outcome struct {
	Directive Directive
	Result    any
	Err       error
	Lines     []string
}

// Flight names the flight a successful outcome touched, if any.
func (o Outcome) Flight() string {
	switch res := o.Result.(type) {
	case *models.AddSeatsResult:
		return res.Flight
	case *models.EnqueueResult:
		return res.Flight
	case *models.SellResult:
		return res.Flight
	case *models.CloseResult:
		return res.Flight
	case *models.Report:
		return res.Flight
	case *models.PassengerInfo:
		return res.Flight
	}
	return ""
}

// Dispatcher executes directives against one session.
type Dispatcher struct {
	session *admission.Session
	logger  *slog.Logger
}

// NewDispatcher wraps session.
func NewDispatcher(session *admission.Session, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		session: session,
		logger:  logger,
	}
}

// Session returns the underlying engine session.
func (d *Dispatcher) Session() *admission.Session {
	return d.session
}

// Execute runs one input line. It reports false for blank lines, which
// produce no output.
func (d *Dispatcher) Execute(line string) (Outcome, bool) {
	dir, ok := Parse(line)
	if !ok {
		return Outcome{}, false
	}

	out := Outcome{Directive: dir}
	out.Result, out.Lines, out.Err = d.dispatch(dir)
	if out.Err != nil {
		d.logger.Debug("directive rejected",
			"verb", dir.Verb,
			"kind", admission.KindOf(out.Err).String(),
			"error", out.Err,
		)
		out.Result = nil
		out.Lines = []string{errorLine}
	}
	return out, true
}

func (d *Dispatcher) dispatch(dir Directive) (any, []string, error) {
	switch dir.Verb {
	case VerbAddSeat:
		return d.addSeat(dir)
	case VerbEnqueue:
		return d.enqueue(dir)
	case VerbSell:
		res, err := d.session.Sell(dir.Arg(0))
		if err != nil {
			return nil, nil, err
		}
		return res, formatSell(res), nil
	case VerbClose:
		res, err := d.session.Close(dir.Arg(0))
		if err != nil {
			return nil, nil, err
		}
		return res, formatClose(res), nil
	case VerbReport:
		res, err := d.session.Report(dir.Arg(0))
		if err != nil {
			return nil, nil, err
		}
		return res, formatReport(res), nil
	case VerbInfo:
		res, err := d.session.Info(dir.Arg(0))
		if err != nil {
			return nil, nil, err
		}
		return res, formatInfo(res), nil
	}
	return nil, nil, &admission.Error{Kind: admission.KindMalformed, Subject: "unknown directive " + string(dir.Verb)}
}

func (d *Dispatcher) addSeat(dir Directive) (any, []string, error) {
	flight, label, count := dir.Arg(0), dir.Arg(1), dir.Arg(2)
	if flight == "" || label == "" || count == "" {
		return nil, nil, &admission.Error{Kind: admission.KindMalformed, Subject: "addseat needs flight, class and count"}
	}
	quota, err := strconv.Atoi(count)
	if err != nil {
		return nil, nil, &admission.Error{Kind: admission.KindMalformed, Subject: "seat count " + count}
	}
	class, ok := models.ParseSeatClass(label)
	if !ok {
		return nil, nil, &admission.Error{Kind: admission.KindInvalidClass, Subject: label}
	}

	res, err := d.session.AddSeats(flight, class, quota)
	if err != nil {
		return nil, nil, err
	}
	return res, formatAddSeats(res), nil
}

func (d *Dispatcher) enqueue(dir Directive) (any, []string, error) {
	flight, label, name, boost := dir.Arg(0), dir.Arg(1), dir.Arg(2), dir.Arg(3)
	if flight == "" || label == "" || name == "" {
		return nil, nil, &admission.Error{Kind: admission.KindMalformed, Subject: "enqueue needs flight, class and passenger"}
	}
	class, ok := models.ParseSeatClass(label)
	if !ok {
		return nil, nil, &admission.Error{Kind: admission.KindInvalidClass, Subject: label}
	}
	priority, err := models.PriorityFor(class, models.Boost(boost))
	if err != nil {
		return nil, nil, &admission.Error{Kind: admission.KindInvalidBoost, Subject: err.Error()}
	}

	res, err := d.session.Enqueue(name, flight, priority)
	if err != nil {
		return nil, nil, err
	}
	return res, formatEnqueue(res), nil
}
