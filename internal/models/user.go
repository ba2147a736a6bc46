package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShipmentStatus string

const (
	ShipmentNotShipped ShipmentStatus = "Not Shipped"
	ShipmentInProgress ShipmentStatus = "In Progress"
	ShipmentShipped    ShipmentStatus = "Shipped"
)

var ErrInvalidShipmentStatus = errors.New("invalid shipment status")

// ShipmentStatuses lists every accepted status in fulfillment order.
var ShipmentStatuses = []ShipmentStatus{
	ShipmentNotShipped,
	ShipmentInProgress,
	ShipmentShipped,
}

func (s ShipmentStatus) Valid() bool {
	for _, v := range ShipmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseShipmentStatus accepts only the exact enum spellings.
func ParseShipmentStatus(s string) (ShipmentStatus, error) {
	status := ShipmentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidShipmentStatus, s)
	}
	return status, nil
}

// ShipmentDetails is embedded in every User record.
// The order id keeps the "odrerId" key of documents written before this
// service, in storage and in responses.
type ShipmentDetails struct {
	OrderID      string `bson:"odrerId,omitempty" json:"odrerId,omitempty"`
	FullName     string `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	Country      string `bson:"country,omitempty" json:"country,omitempty"`
	City         string `bson:"city,omitempty" json:"city,omitempty"`
	ZipCode      string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	AddressLine1 string `bson:"addressLine1,omitempty" json:"addressLine1,omitempty"`
	AddressLine2 string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	PhoneNumber  string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
}

// User is one purchaser of an Orion device. WalletAddress is the lookup key
// for shipment updates but is not unique across records.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	WalletAddress   string             `bson:"walletAddress" json:"walletAddress"`
	ShipmentDetails ShipmentDetails    `bson:"shipmentDetails" json:"shipmentDetails"`
	ShipmentStatus  ShipmentStatus     `bson:"shipmentStatus" json:"shipmentStatus"`
	TransactionHash string             `bson:"transactionHash,omitempty" json:"transactionHash,omitempty"`
}

// ApplyDefaults fills fields the schema defaults when absent.
func (u *User) ApplyDefaults() {
	if u.ShipmentStatus == "" {
		u.ShipmentStatus = ShipmentNotShipped
	}
}
