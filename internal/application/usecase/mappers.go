package usecase

import (
	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

func toClientStatusResponse(s *entity.ClientStatus) *dto.ClientStatusResponse {
	if s == nil {
		return nil
	}
	return &dto.ClientStatusResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

func toSubscriptionResponse(s *entity.Subscription) *dto.SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &dto.SubscriptionResponse{
		ID:         s.ID,
		Code:       s.Code,
		Name:       s.Name,
		Display:    s.String(),
		MonthlyFee: s.MonthlyFee,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toDiscoverySourceResponse(s *entity.DiscoverySource) *dto.DiscoverySourceResponse {
	if s == nil {
		return nil
	}
	return &dto.DiscoverySourceResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

func toContactResponse(c *entity.CustomerContact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:          c.ID,
		CustomerID:  c.CustomerID,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Relation:    c.Relation,
		IsPrimary:   c.IsPrimary,
		IsEmergency: c.IsEmergency,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toContactResponses(list []*entity.CustomerContact) []dto.ContactResponse {
	out := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContactResponse(c))
	}
	return out
}

func toStatusResponse(s *entity.CustomerStatus) dto.CustomerStatusResponse {
	return dto.CustomerStatusResponse{
		ID:          s.ID,
		CustomerID:  s.CustomerID,
		StatusID:    s.StatusID,
		StatusName:  s.StatusName,
		Reason:      s.Reason,
		ChangedBy:   s.ChangedBy,
		DateChanged: s.DateChanged,
	}
}

func toStatusResponses(list []*entity.CustomerStatus) []dto.CustomerStatusResponse {
	out := make([]dto.CustomerStatusResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStatusResponse(s))
	}
	return out
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
