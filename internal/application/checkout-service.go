package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/flow"
	"github.com/RaikyD/stitch-storefront/internal/logger"
)

var (
	ErrStepNotReady    = errors.New("step is not reachable yet")
	ErrDraftReset      = errors.New("order was reset while the step was being submitted")
	ErrUnauthenticated = errors.New("authentication required")
)

// NotReadyError sends the caller back to the first step that still needs input.
type NotReadyError struct {
	Step     flow.Step
	Redirect string
	Cause    error
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Cause)
}

func (e *NotReadyError) Unwrap() error { return e.Cause }

// Checkout drives order drafts through the step flow.
type Checkout struct {
	drafts    *Drafts
	catalog   Catalog
	book      *AddressBook
	orders    OrderAPI
	archive   *OrdersService
	publisher Publisher
	now       func() time.Time
}

// NewCheckout wires the flow. publisher may be nil, in which case placed
// orders go straight to the archive.
func NewCheckout(drafts *Drafts, catalog Catalog, book *AddressBook, orders OrderAPI, archive *OrdersService, publisher Publisher) *Checkout {
	return &Checkout{
		drafts:    drafts,
		catalog:   catalog,
		book:      book,
		orders:    orders,
		archive:   archive,
		publisher: publisher,
		now:       time.Now,
	}
}

type StepRequest struct {
	Step  flow.Step
	Draft string
	Token string
	User  *domain.User
	Route flow.RouteParams
	Input StepInput
}

type StepResult struct {
	Step   flow.Step           `json:"step"`
	Next   flow.Step           `json:"next,omitempty"`
	Path   string              `json:"path,omitempty"`
	Order  domain.OrderDetails `json:"order"`
	Placed *domain.PlacedOrder `json:"placed,omitempty"`
}

type StepStatus struct {
	Step     flow.Step        `json:"step"`
	Ready    bool             `json:"ready"`
	Complete bool             `json:"complete"`
	Errors   flow.FieldErrors `json:"errors,omitempty"`
	Next     flow.Step        `json:"next,omitempty"`
	Path     string           `json:"path,omitempty"`
	Redirect string           `json:"redirect,omitempty"`
}

func (c *Checkout) Order(draft string) domain.OrderDetails {
	return c.drafts.Get(draft).Get()
}

// Update merges a raw patch. Unknown clear entries are rejected.
func (c *Checkout) Update(draft string, p domain.Patch) (domain.OrderDetails, error) {
	var errs flow.FieldErrors
	for _, f := range p.Clear {
		if !f.Known() {
			errs = mergeErrs(errs, flow.FieldErrors{"clear": "unknown field " + string(f)})
		}
	}
	if len(errs) > 0 {
		return domain.OrderDetails{}, errs
	}
	return c.drafts.Get(draft).Update(p), nil
}

func (c *Checkout) Reset(draft string) {
	c.drafts.Get(draft).Reset()
}

// Status reports where step stands for the draft.
func (c *Checkout) Status(draft string, step flow.Step, route flow.RouteParams) StepStatus {
	o := c.drafts.Get(draft).Get()
	st := StepStatus{Step: step, Ready: flow.Ready(step, o)}
	if !st.Ready {
		st.Redirect = flow.Resolve(route, flow.Resume(o))
		return st
	}
	st.Errors = flow.Check(step, o)
	st.Complete = len(st.Errors) == 0
	if next, ok := flow.Next(step, o); ok && st.Complete {
		st.Next = next
		st.Path = flow.Resolve(route, next)
	}
	return st
}

// Submit validates the step input, merges it into the draft and returns the
// next step's path in the caller's route shape.
func (c *Checkout) Submit(ctx context.Context, req StepRequest) (StepResult, error) {
	if req.Step == flow.StepConfirmation {
		po, err := c.Confirm(ctx, req)
		if err != nil {
			return StepResult{}, err
		}
		return StepResult{Step: req.Step, Path: flow.Resolve(req.Route, req.Step), Placed: &po}, nil
	}

	store := c.drafts.Get(req.Draft)
	o, epoch := store.Snapshot()
	if !flow.Ready(req.Step, o) {
		return StepResult{}, c.notReady(req.Step, o, req.Route, ErrStepNotReady)
	}

	// may call the marketplace API; the draft can be reset meanwhile
	patch, err := c.patchFor(ctx, req.Step, req.Input, o, req.Token, req.Route)
	if err != nil {
		return StepResult{}, err
	}
	if errs := flow.Check(req.Step, o.Merge(patch)); len(errs) > 0 {
		return StepResult{}, errs
	}

	merged, ok := store.UpdateIf(epoch, patch)
	if !ok {
		logger.Info("discarding step result for reset draft", "draft", req.Draft, "step", req.Step)
		return StepResult{}, c.notReady(req.Step, merged, req.Route, ErrDraftReset)
	}

	res := StepResult{Step: req.Step, Order: merged}
	if next, ok := flow.Next(req.Step, merged); ok {
		res.Next = next
		res.Path = flow.Resolve(req.Route, next)
	}
	return res, nil
}

func (c *Checkout) notReady(step flow.Step, o domain.OrderDetails, route flow.RouteParams, cause error) error {
	return &NotReadyError{Step: step, Redirect: flow.Resolve(route, flow.Resume(o)), Cause: cause}
}

// SetPincode applies a manually entered or geolocated pincode.
func (c *Checkout) SetPincode(draft, pin string) (domain.OrderDetails, error) {
	if errs := flow.CheckPincode(pin); len(errs) > 0 {
		return domain.OrderDetails{}, errs
	}
	return c.drafts.Get(draft).Update(flow.PincodePatch(pin)), nil
}

// SelectVisitDate picks the home measurement date. The chosen slot is dropped.
func (c *Checkout) SelectVisitDate(draft, date string) (domain.OrderDetails, error) {
	if errs := checkDate(date, c.now()); len(errs) > 0 {
		return domain.OrderDetails{}, errs
	}
	return c.drafts.Get(draft).Update(flow.HomeServiceDatePatch(date)), nil
}

func (c *Checkout) SelectVisitSlot(draft, slot string) (domain.OrderDetails, error) {
	store := c.drafts.Get(draft)
	o, epoch := store.Snapshot()
	date := domain.Deref(o.ScheduledDate)
	if date == "" {
		return domain.OrderDetails{}, flow.FieldErrors{"date": "Select a date first"}
	}
	if errs := flow.CheckSchedule(date, slot, c.now()); len(errs) > 0 {
		return domain.OrderDetails{}, renameKey(errs, "slot", "time")
	}
	return c.commit(store, epoch, flow.HomeServiceSlotPatch(slot))
}

// SelectPickupDate picks the pickup date. The chosen slot is dropped.
func (c *Checkout) SelectPickupDate(draft, date string) (domain.OrderDetails, error) {
	if errs := checkDate(date, c.now()); len(errs) > 0 {
		return domain.OrderDetails{}, errs
	}
	store := c.drafts.Get(draft)
	o, epoch := store.Snapshot()
	return c.commit(store, epoch, flow.PickupDatePatch(o, date))
}

func (c *Checkout) SelectPickupSlot(draft, slot string) (domain.OrderDetails, error) {
	store := c.drafts.Get(draft)
	o, epoch := store.Snapshot()
	if o.PickupDetails == nil || o.PickupDetails.Date == "" {
		return domain.OrderDetails{}, flow.FieldErrors{"date": "Select a date first"}
	}
	if errs := flow.CheckSchedule(o.PickupDetails.Date, slot, c.now()); len(errs) > 0 {
		return domain.OrderDetails{}, errs
	}
	return c.commit(store, epoch, flow.PickupSlotPatch(o, slot))
}

func (c *Checkout) commit(store *OrderStore, epoch uint64, p domain.Patch) (domain.OrderDetails, error) {
	out, ok := store.UpdateIf(epoch, p)
	if !ok {
		return out, &NotReadyError{Step: flow.StepAddress, Redirect: flow.Resolve(flow.RouteParams{}, flow.Resume(out)), Cause: ErrDraftReset}
	}
	return out, nil
}

// ForgetAddress drops a deleted saved address from the draft when it was the
// selected one. The pincode stays.
func (c *Checkout) ForgetAddress(draft, id string) {
	store := c.drafts.Get(draft)
	o := store.Get()
	if domain.Deref(o.SelectedAddressID) != id {
		return
	}
	store.Update(domain.Patch{Clear: []domain.Field{domain.FieldSelectedAddressID, domain.FieldDeliveryAddress}})
}

// Confirm places the draft. On any submission failure the draft is left
// untouched so the user can retry; on success it is reset.
func (c *Checkout) Confirm(ctx context.Context, req StepRequest) (domain.PlacedOrder, error) {
	if req.Token == "" || req.User == nil {
		return domain.PlacedOrder{}, ErrUnauthenticated
	}
	store := c.drafts.Get(req.Draft)
	o := store.Get()
	if !flow.Ready(flow.StepConfirmation, o) {
		return domain.PlacedOrder{}, c.notReady(flow.StepConfirmation, o, req.Route, ErrStepNotReady)
	}

	po := domain.PlacedOrder{
		ID:        uuid.New(),
		UserID:    req.User.ID,
		Phone:     req.User.Phone,
		Order:     o,
		Pricing:   flow.Price(o),
		CreatedAt: c.now().UTC(),
	}
	switch {
	case o.PickupDetails != nil && o.PickupDetails.Address != nil:
		po.DeliveryTo = o.PickupDetails.Address.OneLine()
	case o.DeliveryAddress != nil:
		po.DeliveryTo = o.DeliveryAddress.OneLine()
	}
	ref, err := c.orders.SubmitOrder(ctx, req.Token, po)
	if err != nil {
		logger.Warn("order submission failed", "draft", req.Draft, "err", err)
		return domain.PlacedOrder{}, fmt.Errorf("submit order: %w", err)
	}
	po.Reference = strings.TrimSpace(ref)

	c.archive.Remember(po)
	c.archivePlaced(po)

	store.Reset()
	logger.Info("order placed", "id", po.ID, "reference", po.Reference, "total", po.Pricing.GrandTotal)
	return po, nil
}

// archivePlaced hands po to Kafka when configured, falling back to a direct
// archive write. The order is already accepted by the backend at this point.
func (c *Checkout) archivePlaced(po domain.PlacedOrder) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if c.publisher != nil {
		err := c.publisher.PublishOrder(ctx, po)
		if err == nil {
			return
		}
		logger.Warn("publish placed order failed, archiving directly", "id", po.ID, "err", err)
	}
	if err := c.archive.AddOrder(ctx, &po); err != nil {
		logger.Error("archive placed order failed", "id", po.ID, "err", err)
	}
}

func checkDate(date string, now time.Time) flow.FieldErrors {
	for _, d := range flow.SelectableDates(now) {
		if d == date {
			return nil
		}
	}
	return flow.FieldErrors{"date": "Choose one of the next 7 days"}
}
