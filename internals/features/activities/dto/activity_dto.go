package dto

import (
	"strings"

	"github.com/google/uuid"

	"kreditku_backend/internals/features/activities/model"
	"kreditku_backend/internals/helpers/dbtime"
)

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

type CreateActivityRequest struct {
	ActivityType        string     `json:"activity_type" validate:"required,oneof=kunjungan_dealer survey follow_up lainnya"`
	ActivityTitle       string     `json:"activity_title" validate:"required,min=2,max=160"`
	ActivityDescription *string    `json:"activity_description,omitempty"`
	ActivityDealerID    *uuid.UUID `json:"activity_dealer_id,omitempty"`
	ActivityOrderID     *uuid.UUID `json:"activity_order_id,omitempty"`
	ActivityDate        string     `json:"activity_date" validate:"required"` // YYYY-MM-DD
}

func (r *CreateActivityRequest) Normalize() {
	r.ActivityType = strings.ToLower(strings.TrimSpace(r.ActivityType))
	r.ActivityTitle = strings.TrimSpace(r.ActivityTitle)
	r.ActivityDescription = trimPtr(r.ActivityDescription)
	r.ActivityDate = strings.TrimSpace(r.ActivityDate)
}

func (r *CreateActivityRequest) ToModel(userID uuid.UUID, userName string) (*model.ActivityModel, error) {
	date, err := dbtime.ParseDate(r.ActivityDate)
	if err != nil {
		return nil, err
	}
	return &model.ActivityModel{
		ActivityUserID:      userID,
		ActivityUserName:    userName,
		ActivityType:        model.ActivityType(r.ActivityType),
		ActivityTitle:       r.ActivityTitle,
		ActivityDescription: r.ActivityDescription,
		ActivityDealerID:    r.ActivityDealerID,
		ActivityOrderID:     r.ActivityOrderID,
		ActivityDate:        date,
	}, nil
}

type PatchActivityRequest struct {
	ActivityType        *string    `json:"activity_type,omitempty" validate:"omitempty,oneof=kunjungan_dealer survey follow_up lainnya"`
	ActivityTitle       *string    `json:"activity_title,omitempty" validate:"omitempty,min=2,max=160"`
	ActivityDescription *string    `json:"activity_description,omitempty"`
	ActivityDealerID    *uuid.UUID `json:"activity_dealer_id,omitempty"`
	ActivityOrderID     *uuid.UUID `json:"activity_order_id,omitempty"`
	ActivityDate        *string    `json:"activity_date,omitempty"`
}

func (r *PatchActivityRequest) ApplyTo(m *model.ActivityModel) error {
	if r.ActivityType != nil {
		m.ActivityType = model.ActivityType(strings.ToLower(strings.TrimSpace(*r.ActivityType)))
	}
	if r.ActivityTitle != nil {
		m.ActivityTitle = strings.TrimSpace(*r.ActivityTitle)
	}
	if r.ActivityDescription != nil {
		m.ActivityDescription = trimPtr(r.ActivityDescription)
	}
	if r.ActivityDealerID != nil {
		m.ActivityDealerID = r.ActivityDealerID
	}
	if r.ActivityOrderID != nil {
		m.ActivityOrderID = r.ActivityOrderID
	}
	if r.ActivityDate != nil {
		d, err := dbtime.ParseDate(*r.ActivityDate)
		if err != nil {
			return err
		}
		m.ActivityDate = d
	}
	return nil
}
