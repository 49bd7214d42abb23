package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

// TenantSlug is the single DNS label that names an organization, the
// "acme" in acme.riderota.com.
type TenantSlug string

func NewTenantSlug(slug string) TenantSlug { return TenantSlug(slug) }
func (t TenantSlug) String() string        { return string(t) }
func (t TenantSlug) IsEmpty() bool         { return string(t) == "" }
