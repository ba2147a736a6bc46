package controllers

import (
	"strings"

	"orion_service/internal/models"
)

type PaymentSuccessRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type ShipmentDetailsRequest struct {
	OrderID string `json:"orderId"`
	// Records and older checkout builds use the misspelled key.
	LegacyOrderID string `json:"odrerId"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Country       string `json:"country"`
	City          string `json:"city"`
	ZipCode       string `json:"zipCode"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2"`
	PhoneNumber   string `json:"phoneNumber"`
}

func (r ShipmentDetailsRequest) toModel() models.ShipmentDetails {
	orderID := r.OrderID
	if orderID == "" {
		orderID = r.LegacyOrderID
	}
	return models.ShipmentDetails{
		OrderID:      orderID,
		FullName:     r.FullName,
		Email:        r.Email,
		Country:      r.Country,
		City:         r.City,
		ZipCode:      r.ZipCode,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		PhoneNumber:  r.PhoneNumber,
	}
}

// CreateUserRequest is the body of POST /api/users. Every field is optional.
type CreateUserRequest struct {
	WalletAddress   string                 `json:"walletAddress"`
	ShipmentDetails ShipmentDetailsRequest `json:"shipmentDetails"`
	ShipmentStatus  string                 `json:"shipmentStatus"`
	TransactionHash string                 `json:"transactionHash"`
}

func (r CreateUserRequest) ToUser() (models.User, error) {
	user := models.User{
		WalletAddress:   r.WalletAddress,
		ShipmentDetails: r.ShipmentDetails.toModel(),
		TransactionHash: r.TransactionHash,
	}
	if r.ShipmentStatus != "" {
		status, err := models.ParseShipmentStatus(r.ShipmentStatus)
		if err != nil {
			return models.User{}, models.NewValidationError("shipmentStatus", statusReason, err)
		}
		user.ShipmentStatus = status
	}
	user.ApplyDefaults()
	return user, nil
}

type UpdateShipmentStatusRequest struct {
	ShipmentStatus string `json:"shipmentStatus"`
}

func (r UpdateShipmentStatusRequest) Status() (models.ShipmentStatus, error) {
	if r.ShipmentStatus == "" {
		return "", models.NewValidationError("shipmentStatus", "is required", nil)
	}
	status, err := models.ParseShipmentStatus(r.ShipmentStatus)
	if err != nil {
		return "", models.NewValidationError("shipmentStatus", statusReason, err)
	}
	return status, nil
}

var statusReason = func() string {
	names := make([]string, len(models.ShipmentStatuses))
	for i, s := range models.ShipmentStatuses {
		names[i] = string(s)
	}
	return "must be one of " + strings.Join(names, ", ")
}()
