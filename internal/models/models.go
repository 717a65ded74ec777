package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var BookingStatuses = []BookingStatus{BookingRequested, BookingConfirmed, BookingCompleted, BookingCancelled}

type OrderStatus string

const (
	OrderRequested  OrderStatus = "requested"
	OrderProcessing OrderStatus = "processing"
	OrderFulfilled  OrderStatus = "fulfilled"
	OrderCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{OrderRequested, OrderProcessing, OrderFulfilled, OrderCancelled}

type TimeOfDay string

const (
	AnyTime TimeOfDay = "any"
	Morning TimeOfDay = "morning"
	Night   TimeOfDay = "night"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"    json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"    json:"email"`
	PasswordHash string    `gorm:"not null"                json:"-"`
	CreatedAt    time.Time `                               json:"created_at"`
}

type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	DisplayName string    `                             json:"display_name"`
	IsAdmin     bool      `gorm:"not null;default:false" json:"is_admin"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	JTI       string    `gorm:"uniqueIndex;not null" json:"jti"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt int64     `gorm:"not null"             json:"expires_at"`
	Revoked   bool      `gorm:"default:false"        json:"revoked"`
	RotatedAt int64     `gorm:"not null;default:0"   json:"rotated_at"`
}

type Service struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"             json:"id"`
	Name            string    `gorm:"not null"                         json:"name"`
	DurationMinutes int       `gorm:"not null;check:duration_minutes>0" json:"duration_minutes"`
	PriceCents      int64     `gorm:"not null;check:price_cents>=0"    json:"price_cents"`
	Active          bool      `gorm:"not null;default:true"            json:"active"`
	CreatedAt       time.Time `                                        json:"created_at"`
}

type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Name       string    `gorm:"not null"                      json:"name"`
	PriceCents int64     `gorm:"not null;check:price_cents>=0" json:"price_cents"`
	Active     bool      `gorm:"not null;default:true"         json:"active"`
	CreatedAt  time.Time `                                     json:"created_at"`
}

type Booking struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"   json:"id"`
	UserID    uuid.UUID     `gorm:"type:uuid;index;not null" json:"user_id"`
	ServiceID uuid.UUID     `gorm:"type:uuid;not null"     json:"service_id"`
	Service   *Service      `gorm:"foreignKey:ServiceID"   json:"service,omitempty"`
	StartsAt  time.Time     `gorm:"not null;index"         json:"starts_at"`
	Status    BookingStatus `gorm:"not null;default:requested" json:"status"`
	Note      *string       `                              json:"note,omitempty"`
	CreatedAt time.Time     `                              json:"created_at"`
}

type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Content   string    `gorm:"not null"                 json:"content"`
	CreatedAt time.Time `gorm:"index"                    json:"created_at"`
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;index;not null" json:"post_id"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"       json:"user_id"`
	Content   string    `gorm:"not null"                 json:"content"`
	CreatedAt time.Time `                                json:"created_at"`
}

type PostLike struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"post_id"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `                            json:"created_at"`
}

type RoutineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name      string    `gorm:"not null"                 json:"name"`
	TimeOfDay TimeOfDay `gorm:"not null;default:any"     json:"time_of_day"`
	Active    bool      `gorm:"not null;default:true"    json:"active"`
	CreatedAt time.Time `                                json:"created_at"`
}

type RoutineLog struct {
	ID            uint      `gorm:"primaryKey"                                            json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_routine_log_day"   json:"user_id"`
	RoutineItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_routine_log_day"   json:"routine_item_id"`
	LogDate       string    `gorm:"type:varchar(10);not null;uniqueIndex:uidx_routine_log_day" json:"log_date"`
	Done          bool      `gorm:"not null;default:false"                                json:"done"`
	UpdatedAt     time.Time `                                                             json:"updated_at"`
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                             json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_product;not null"  json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_product;not null"  json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID"                             json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:1;check:quantity>0"              json:"quantity"`
}

type OrderRequest struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID    uuid.UUID          `gorm:"type:uuid;index;not null" json:"user_id"`
	Status    OrderStatus        `gorm:"not null;default:requested" json:"status"`
	Note      *string            `                                json:"note,omitempty"`
	CreatedAt time.Time          `gorm:"index"                    json:"created_at"`
	Items     []OrderRequestItem `gorm:"foreignKey:OrderRequestID" json:"items,omitempty"`
}

type OrderRequestItem struct {
	ID             uint      `gorm:"primaryKey"                          json:"id"`
	OrderRequestID uuid.UUID `gorm:"type:uuid;index;not null"            json:"order_request_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null"                  json:"product_id"`
	Quantity       int       `gorm:"not null;check:quantity>0"           json:"quantity"`
}

// All lists every table the portal owns, in dependency order.
func All() []any {
	return []any{
		&User{}, &Profile{}, &RefreshToken{},
		&Service{}, &Product{}, &Booking{},
		&Post{}, &Comment{}, &PostLike{},
		&RoutineItem{}, &RoutineLog{},
		&CartItem{}, &OrderRequest{}, &OrderRequestItem{},
	}
}

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error         { newID(&u.ID); return nil }
func (s *Service) BeforeCreate(tx *gorm.DB) error      { newID(&s.ID); return nil }
func (p *Product) BeforeCreate(tx *gorm.DB) error      { newID(&p.ID); return nil }
func (b *Booking) BeforeCreate(tx *gorm.DB) error      { newID(&b.ID); return nil }
func (p *Post) BeforeCreate(tx *gorm.DB) error         { newID(&p.ID); return nil }
func (c *Comment) BeforeCreate(tx *gorm.DB) error      { newID(&c.ID); return nil }
func (r *RoutineItem) BeforeCreate(tx *gorm.DB) error  { newID(&r.ID); return nil }
func (c *CartItem) BeforeCreate(tx *gorm.DB) error     { newID(&c.ID); return nil }
func (o *OrderRequest) BeforeCreate(tx *gorm.DB) error { newID(&o.ID); return nil }

func (CartItem) TableName() string {
	return "cart_items"
}
