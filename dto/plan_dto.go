package dto

import (
	"time"

	"github.com/DotRPM/dot-image/models"
)

type Subscription struct {
	Id               string    `json:"id"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
	Test             bool      `json:"test"`
}

func AdaptSubscriptionDto(subscription models.Subscription) Subscription {
	return Subscription{
		Id:               subscription.Id,
		Name:             subscription.Name,
		Status:           string(subscription.Status),
		CurrentPeriodEnd: subscription.CurrentPeriodEnd,
		Test:             subscription.Test,
	}
}

type PlanStatus struct {
	Subscription *Subscription `json:"subscription"`
	Credits      int           `json:"credits"`
	Usage        int           `json:"usage"`
}

func AdaptPlanStatusDto(status models.PlanStatus) PlanStatus {
	dto := PlanStatus{
		Credits: status.Credits,
		Usage:   status.Usage,
	}
	if status.Subscription != nil {
		subscription := AdaptSubscriptionDto(*status.Subscription)
		dto.Subscription = &subscription
	}
	return dto
}

type ChargeApplication struct {
	Applied bool `json:"applied"`
	Credits int  `json:"credits"`
}

func AdaptChargeApplicationDto(application models.ChargeApplication) ChargeApplication {
	return ChargeApplication{
		Applied: application.Applied,
		Credits: application.Balance,
	}
}

type BuyCreditsBody struct {
	Credits int `json:"credits" binding:"required"`
}
