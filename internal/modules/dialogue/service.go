// README: Dialogue orchestrator runs one turn: classify, dispatch, merge, commit, reply.
package dialogue

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"foodiespot/internal/metrics"
	"foodiespot/internal/modules/extract"
	"foodiespot/internal/modules/intent"
	"foodiespot/internal/modules/session"
	"foodiespot/internal/types"
)

var ErrEmptyMessage = errors.New("message is empty")

type Orchestrator struct {
	sessions   Sessions
	classifier intent.Classifier
	extractor  Extractor
	engine     Engine
	catalog    Catalog
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

func NewOrchestrator(
	sessions Sessions,
	classifier intent.Classifier,
	extractor Extractor,
	engine Engine,
	cat Catalog,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		sessions:   sessions,
		classifier: classifier,
		extractor:  extractor,
		engine:     engine,
		catalog:    cat,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// Process handles one inbound message. The session lock is held for the whole
// turn, so concurrent turns on one session are applied one after another.
// User-facing problems are replies; only infrastructure failures are errors.
func (o *Orchestrator) Process(ctx context.Context, message, sessionID string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	start := o.now()

	var reply *Reply
	err := o.sessions.WithSession(ctx, sessionID, func(sess *session.Session) error {
		if sess.State == types.StateCompleted {
			sess.State = types.StateInitial
		}
		from := sess.State
		sess.Append(session.RoleUser, message, o.now())

		in := o.classifier.Classify(ctx, message, sess.State)
		sess.LastIntent = string(in)

		r, err := o.dispatch(ctx, sess, in, message)
		if err != nil {
			return err
		}
		sess.Append(session.RoleAssistant, r.Response, o.now())
		reply = r

		o.logger.Debug("dialogue turn",
			zap.String("session_id", sess.ID),
			zap.String("intent", string(in)),
			zap.String("from", string(from)),
			zap.String("to", string(sess.State)),
			zap.Bool("booked", r.Data != nil),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.metrics.ObserveTurn(string(reply.Intent), o.now().Sub(start))
	return reply, nil
}

func (o *Orchestrator) dispatch(ctx context.Context, sess *session.Session, in intent.Intent, message string) (*Reply, error) {
	switch in {
	case intent.BookReservation:
		if err := sess.Transition(types.StateGatheringInfo); err != nil {
			return nil, err
		}
		return o.gather(ctx, sess, in, message, false)

	case intent.ProvideInfo:
		wasCollecting := sess.State.Collecting()
		if !wasCollecting {
			if err := sess.Transition(types.StateGatheringInfo); err != nil {
				return nil, err
			}
		}
		return o.gather(ctx, sess, in, message, wasCollecting)

	case intent.ModifyBooking:
		return o.modify(ctx, sess, in, message)

	case intent.ConfirmBooking:
		return o.attemptCommit(ctx, sess, in, "")

	case intent.ContinueBooking:
		return &Reply{Response: o.prompt(sess, ""), Intent: in}, nil

	case intent.GetRecommendations:
		return &Reply{Response: o.recommend(message), Intent: in}, nil

	case intent.CheckAvailability:
		return &Reply{Response: o.availability(message), Intent: in}, nil

	case intent.GeneralInquiry:
		return &Reply{Response: generalReply, Intent: in}, nil
	}
	return &Reply{Response: generalReply, Intent: intent.GeneralInquiry}, nil
}

// gather runs fresh extraction and merges additively. While a booking is in
// progress a reply that is only a number is read as the party size.
func (o *Orchestrator) gather(ctx context.Context, sess *session.Session, in intent.Intent, message string, collecting bool) (*Reply, error) {
	values := o.extractor.Extract(message, extract.ModeFresh)
	if values.Empty() && collecting && !sess.Booking.Has(types.FieldPartySize) {
		if n, ok := extract.BareCount(message); ok {
			values.PartySize = n
		}
	}
	sess.MergeSlots(values, false)
	return o.attemptCommit(ctx, sess, in, "")
}

func (o *Orchestrator) modify(ctx context.Context, sess *session.Session, in intent.Intent, message string) (*Reply, error) {
	values := o.extractor.Extract(message, extract.ModeModification)
	changes := sess.MergeSlots(values, true)
	if len(changes) == 0 {
		return &Reply{Response: clarifyModification, Intent: in}, nil
	}
	o.logger.Debug("booking modified", zap.String("session_id", sess.ID), zap.Strings("changes", changes))
	header := "Got it! I've updated your booking. Now I have: " + sess.Summary()
	return o.attemptCommit(ctx, sess, in, header)
}

// attemptCommit asks the engine to commit once every field is known; until
// then it prompts for what is missing without calling the engine.
func (o *Orchestrator) attemptCommit(ctx context.Context, sess *session.Session, in intent.Intent, header string) (*Reply, error) {
	if !sess.Booking.Complete() {
		return &Reply{Response: o.prompt(sess, header), Intent: in}, nil
	}

	res, err := o.engine.AttemptCommit(ctx, sess.Booking)
	if err != nil {
		return nil, err
	}
	o.metrics.CommitOutcome(string(res.Outcome))

	if res.Success() {
		sess.CommitAndReset()
		if err := sess.Transition(types.StateInitial); err != nil {
			return nil, err
		}
		return &Reply{
			Response: res.Message,
			Intent:   in,
			Data:     &ReplyData{BookingID: res.BookingID().String()},
		}, nil
	}

	// Rejections leave the dialogue state as the intent set it.
	msg := res.Message
	if header != "" {
		msg = header + "\n\n" + res.Message
	}
	return &Reply{Response: msg, Intent: in}, nil
}
