package api

// Payload types mirror the Turnero backend wire format. Field names (including
// the Spanish ones on the appointment body) are what the backend expects and
// must not be normalized here.

type Branch struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Barber struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type User struct {
	ID        string `json:"_id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthdate string `json:"birthdate"`
	Role      string `json:"rol"`
	Points    int    `json:"points"`
	Token     string `json:"token"`
	CreatedAt string `json:"createdAt"`
}

type RegisterInput struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Birthdate string `json:"birthdate"`
}

// AvailabilityDay is one element of the availableAppointments payload.
type AvailabilityDay struct {
	Date      string   `json:"date"`
	FreeSlots []string `json:"freeSlots"`
}

type BarberAppointment struct {
	ID        string `json:"_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"isAvailable"`
}

type AssignedAppointment struct {
	ID          string `json:"_id"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
}

// Appointment statuses accepted by PUT /api/appointments/:id/status.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

type Service struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Status      string  `json:"status,omitempty"`
}

type ServiceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// BranchRef is the branch object embedded in the appointment body.
type BranchRef struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
}

// AppointmentInput is the full draft submitted to POST /api/appointments.
type AppointmentInput struct {
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`
	ClientPhone string    `json:"clientPhone"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Barber      string    `json:"barber"`
	Branch      BranchRef `json:"sucursal"`
}
