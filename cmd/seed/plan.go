package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
)

type linePlan struct {
	Product  int // index into sampleProducts
	Quantity int
}

type paymentPlan struct {
	Method        payment.Method
	Status        payment.Status
	TransactionID string
	Notes         string
}

type orderPlan struct {
	Customer int // index into sampleCustomers
	Lines    []linePlan
	Status   order.Status
	Payments []paymentPlan
}

var seedStatuses = []order.Status{
	order.StatusPending,
	order.StatusProcessing,
	order.StatusShipped,
	order.StatusDelivered,
	order.StatusDelivered,
	order.StatusCancelled,
}

// planOrders draws n orders from rng. A customer holds at most one pending
// order and a line never asks for more than the product's stock.
func planOrders(rng *rand.Rand, n int, day time.Time) []orderPlan {
	var orderable []int
	for i, p := range sampleProducts {
		if p.Stock >= 3 {
			orderable = append(orderable, i)
		}
	}

	hasCart := make(map[int]bool)
	plans := make([]orderPlan, 0, n)
	for seq := 1; seq <= n; seq++ {
		plan := orderPlan{
			Customer: rng.IntN(len(sampleCustomers)),
			Status:   seedStatuses[rng.IntN(len(seedStatuses))],
		}
		if plan.Status == order.StatusPending {
			if hasCart[plan.Customer] {
				plan.Status = order.StatusProcessing
			} else {
				hasCart[plan.Customer] = true
			}
		}

		picks := rng.Perm(len(orderable))[:1+rng.IntN(5)]
		for _, pick := range picks {
			plan.Lines = append(plan.Lines, linePlan{Product: orderable[pick], Quantity: 1 + rng.IntN(3)})
		}

		if plan.Status != order.StatusPending {
			plan.Payments = planPayments(rng, plan.Status, seq, day)
		}
		plans = append(plans, plan)
	}
	return plans
}

// planPayments gives most orders one payment and some a failed attempt
// followed by a completed one
func planPayments(rng *rand.Rand, status order.Status, seq int, day time.Time) []paymentPlan {
	statuses := []payment.Status{singlePaymentStatus(rng, status)}
	if status != order.StatusCancelled && rng.Float64() < 0.2 {
		statuses = []payment.Status{payment.StatusFailed, payment.StatusCompleted}
	}

	methods := payment.AllMethods()
	plans := make([]paymentPlan, 0, len(statuses))
	for i, s := range statuses {
		plans = append(plans, paymentPlan{
			Method:        methods[rng.IntN(len(methods))],
			Status:        s,
			TransactionID: fmt.Sprintf("TXN-%s-%04d-%d", day.Format("20060102"), seq, i+1),
			Notes:         fmt.Sprintf("Payment attempt %d for order %d", i+1, seq),
		})
	}
	return plans
}

func singlePaymentStatus(rng *rand.Rand, status order.Status) payment.Status {
	if status == order.StatusCancelled {
		if rng.IntN(2) == 0 {
			return payment.StatusRefunded
		}
		return payment.StatusFailed
	}
	switch r := rng.Float64(); {
	case r < 0.8:
		return payment.StatusCompleted
	case r < 0.9:
		return payment.StatusPending
	default:
		return payment.StatusFailed
	}
}
