// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The aggregate's nested collections (items, per-seller
// statuses, payment proofs, status history) are serialized as JSONB columns:
// they are only ever read and written through the aggregate, so relational
// decomposition would buy nothing.
package orderrepo

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number carries a uniqueness constraint; the version column backs
// optimistic concurrency control on updates.
type OrderDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number  string    `gorm:"uniqueIndex;size:64"`
	BuyerID uuid.UUID `gorm:"type:uuid;index"`

	Items []byte  `gorm:"type:jsonb"`
	Total float64 `gorm:"type:numeric"`

	Status         int
	SellerStatuses []byte `gorm:"type:jsonb"`

	DeliveryStatus   int
	DeliveryPersonID *uuid.UUID `gorm:"type:uuid;index"`

	DeliveryFee         float64    `gorm:"type:numeric"`
	Address             AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	PaymentMethod       string
	SpecialInstructions string

	ProofOfPayments       []byte `gorm:"type:jsonb"`
	ProofOfDelivery       string
	ProofOfDeliveryImages []byte `gorm:"type:jsonb"`
	DeliveredAt           *time.Time

	History []byte `gorm:"type:jsonb"`

	Version   int
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address columns.
type AddressDTO struct {
	Label      string
	Line       string
	City       string
	PostalCode string
	Phone      string
}

type itemJSON struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	SellerID      string  `json:"sellerId"`
	BusinessName  string  `json:"businessName"`
	AccountNumber string  `json:"accountNumber,omitempty"`
	AccountName   string  `json:"accountName,omitempty"`
	CanReview     bool    `json:"canReview"`
	Reviewed      bool    `json:"reviewed"`
}

type historyJSON struct {
	Facet     string    `json:"facet"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
	ActorID   string    `json:"actorId"`
	ActorRole int       `json:"actorRole"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) (OrderDTO, error) {
	items := make([]itemJSON, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemJSON{
			ProductID:     item.ProductID().String(),
			Name:          item.Name(),
			Price:         item.Price(),
			Quantity:      item.Quantity(),
			ImageURL:      item.ImageURL(),
			SellerID:      item.SellerID().String(),
			BusinessName:  item.SellerPayment().BusinessName(),
			AccountNumber: item.SellerPayment().AccountNumber(),
			AccountName:   item.SellerPayment().AccountName(),
			CanReview:     item.CanReview(),
			Reviewed:      item.Reviewed(),
		})
	}
	itemsRaw, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	sellerStatuses := make(map[string]int, len(o.SellerStatuses()))
	for sellerID, s := range o.SellerStatuses() {
		sellerStatuses[sellerID.String()] = int(s)
	}
	sellerStatusesRaw, err := json.Marshal(sellerStatuses)
	if err != nil {
		return OrderDTO{}, err
	}

	proofs := make(map[string]string, len(o.ProofOfPayments()))
	for sellerID, ref := range o.ProofOfPayments() {
		proofs[sellerID.String()] = ref
	}
	proofsRaw, err := json.Marshal(proofs)
	if err != nil {
		return OrderDTO{}, err
	}

	imagesRaw, err := json.Marshal(o.ProofOfDeliveryImages())
	if err != nil {
		return OrderDTO{}, err
	}

	history := make([]historyJSON, 0, len(o.History()))
	for _, change := range o.History() {
		history = append(history, historyJSON{
			Facet:     change.Facet,
			Status:    change.Status,
			At:        change.At,
			ActorID:   change.By.ID().String(),
			ActorRole: int(change.By.Role()),
		})
	}
	historyRaw, err := json.Marshal(history)
	if err != nil {
		return OrderDTO{}, err
	}

	var deliveryPersonID *uuid.UUID
	if id := o.DeliveryPerson(); id != nil {
		raw := id.Bytes()
		deliveryPersonID = &raw
	}

	return OrderDTO{
		ID:               o.ID().Bytes(),
		Number:           o.Number(),
		BuyerID:          o.BuyerID().Bytes(),
		Items:            itemsRaw,
		Total:            o.Total(),
		Status:           int(o.Status()),
		SellerStatuses:   sellerStatusesRaw,
		DeliveryStatus:   int(o.DeliveryStatus()),
		DeliveryPersonID: deliveryPersonID,
		DeliveryFee:      o.DeliveryFee(),
		Address: AddressDTO{
			Label:      o.Address().Label(),
			Line:       o.Address().Line(),
			City:       o.Address().City(),
			PostalCode: o.Address().PostalCode(),
			Phone:      o.Address().Phone(),
		},
		PaymentMethod:         o.PaymentMethod(),
		SpecialInstructions:   o.SpecialInstructions(),
		ProofOfPayments:       proofsRaw,
		ProofOfDelivery:       o.ProofOfDelivery(),
		ProofOfDeliveryImages: imagesRaw,
		DeliveredAt:           o.DeliveredAt(),
		History:               historyRaw,
		Version:               o.Version(),
	}, nil
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	var rawItems []itemJSON
	if err = json.Unmarshal(dto.Items, &rawItems); err != nil {
		return nil, err
	}
	items := make([]order.Item, 0, len(rawItems))
	for _, raw := range rawItems {
		item, itemErr := itemFromJSON(raw)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var rawStatuses map[string]int
	if err = json.Unmarshal(dto.SellerStatuses, &rawStatuses); err != nil {
		return nil, err
	}
	sellerStatuses := make(map[kernel.UUID]order.SellerStatus, len(rawStatuses))
	for key, value := range rawStatuses {
		sellerID, idErr := kernel.UUIDFromString(key)
		if idErr != nil {
			return nil, idErr
		}
		sellerStatuses[sellerID] = order.SellerStatus(value)
	}

	var rawProofs map[string]string
	if err = json.Unmarshal(dto.ProofOfPayments, &rawProofs); err != nil {
		return nil, err
	}
	proofs := make(map[kernel.UUID]string, len(rawProofs))
	for key, ref := range rawProofs {
		sellerID, idErr := kernel.UUIDFromString(key)
		if idErr != nil {
			return nil, idErr
		}
		proofs[sellerID] = ref
	}

	var images []string
	if err = json.Unmarshal(dto.ProofOfDeliveryImages, &images); err != nil {
		return nil, err
	}

	var rawHistory []historyJSON
	if err = json.Unmarshal(dto.History, &rawHistory); err != nil {
		return nil, err
	}
	history := make([]order.StatusChange, 0, len(rawHistory))
	for _, raw := range rawHistory {
		actorID, idErr := kernel.UUIDFromString(raw.ActorID)
		if idErr != nil {
			return nil, idErr
		}
		actor, actorErr := kernel.NewActor(actorID, kernel.Role(raw.ActorRole))
		if actorErr != nil {
			return nil, actorErr
		}
		history = append(history, order.StatusChange{
			Facet:  raw.Facet,
			Status: raw.Status,
			At:     raw.At,
			By:     actor,
		})
	}

	var deliveryPersonID *kernel.UUID
	if dto.DeliveryPersonID != nil {
		courierID, idErr := kernel.UUIDFromBytes((*dto.DeliveryPersonID)[:])
		if idErr != nil {
			return nil, idErr
		}
		deliveryPersonID = &courierID
	}

	address, err := order.NewAddress(dto.Address.Label, dto.Address.Line,
		dto.Address.City, dto.Address.PostalCode, dto.Address.Phone)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		buyerID,
		items,
		dto.Total,
		order.Status(dto.Status),
		sellerStatuses,
		order.DeliveryStatus(dto.DeliveryStatus),
		deliveryPersonID,
		dto.DeliveryFee,
		address,
		dto.PaymentMethod,
		dto.SpecialInstructions,
		proofs,
		dto.ProofOfDelivery,
		images,
		dto.DeliveredAt,
		history,
		dto.Version,
	)
}

func itemFromJSON(raw itemJSON) (order.Item, error) {
	productID, err := kernel.UUIDFromString(raw.ProductID)
	if err != nil {
		return order.Item{}, err
	}
	sellerID, err := kernel.UUIDFromString(raw.SellerID)
	if err != nil {
		return order.Item{}, err
	}
	snapshot, err := order.NewPaymentSnapshot(raw.BusinessName, raw.AccountNumber, raw.AccountName)
	if err != nil {
		return order.Item{}, err
	}

	return order.RestoreItem(productID, raw.Name, raw.Price, raw.Quantity,
		raw.ImageURL, sellerID, snapshot, raw.CanReview, raw.Reviewed)
}
