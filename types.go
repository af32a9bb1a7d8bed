package loja

// Role is a plain enumerated attribute on User. Authorization is
// attribute-based: capabilities are granted iff the acting session holds
// RoleAdmin, and enforcement happens at the dispatch boundary, never
// inside reducers.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Theme is the UI preference singleton value.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ClientStatus marks whether a client record is active.
type ClientStatus string

const (
	StatusActivated   ClientStatus = "activated"
	StatusDeactivated ClientStatus = "deactivated"
)

// User is an account record. IDs are assigned at creation
// ("u_" + creation timestamp in milliseconds) and stable for the
// entity's lifetime. Passwords are stored and compared as plaintext; see
// DESIGN.md for why this stays.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Role      Role   `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Rating is the aggregate review score carried by the product feed.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog entry. IDs are assigned as max(existing)+1,
// starting at 1 for an empty collection.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Image       string  `json:"image"`
	Rating      *Rating `json:"rating,omitempty"`
}

// Client is an external contact record, independent of User accounts.
// Same ID assignment rule as Product.
type Client struct {
	ID        int          `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
	CreatedAt string       `json:"createdAt"`
	Address   string       `json:"address"`
	Phone     string       `json:"phone"`
	Status    ClientStatus `json:"status"`
}

// CartItem is a denormalized snapshot of a Product taken when it was
// added to the cart. Later edits to the Product do not reach back into
// cart contents. Qty is always >= 1; entries that would drop to zero are
// removed instead.
type CartItem struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
	Qty   int     `json:"qty"`
}

// OrderItem is a frozen copy of a CartItem captured at checkout time.
type OrderItem struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
	Image string  `json:"image,omitempty"`
}

// Order is immutable after creation. UserID is a non-owning reference to
// the User that placed it; deleting that User leaves the order in place.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	CreatedAt string      `json:"createdAt"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items"`
}

// State is the whole addressable tree: six independent slices composed
// by the Store and snapshotted as a unit after every mutation.
type State struct {
	UI       UIState       `json:"ui"`
	Auth     AuthState     `json:"auth"`
	Products ProductsState `json:"products"`
	Clients  ClientsState  `json:"clients"`
	Cart     CartState     `json:"cart"`
	Orders   OrdersState   `json:"orders"`
}

// Action is one state-transition request. Name returns the routing key
// ("slice/operation") used by the dispatch boundary and audit hooks.
type Action interface {
	Name() string
}
