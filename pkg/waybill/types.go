package waybill

// Page is the generic paged-list envelope used by list endpoints.
type Page[T any] struct {
	List  []T   `json:"list"  yaml:"list"`
	Total int64 `json:"total" yaml:"total"`
}

// Waybill is a shipment record identified by a code and tracked across
// logistics nodes.
type Waybill struct {
	ID              int64  `json:"id"                        yaml:"id"`
	WaybillCode     string `json:"waybillCode"               yaml:"waybillCode"`
	CompanyID       int64  `json:"companyId"                 yaml:"companyId"`
	CompanyName     string `json:"companyName,omitempty"     yaml:"companyName,omitempty"`
	Status          int    `json:"status"                    yaml:"status"`
	SenderName      string `json:"senderName,omitempty"      yaml:"senderName,omitempty"`
	SenderPhone     string `json:"senderPhone,omitempty"     yaml:"senderPhone,omitempty"`
	SenderAddress   string `json:"senderAddress,omitempty"   yaml:"senderAddress,omitempty"`
	ReceiverName    string `json:"receiverName,omitempty"    yaml:"receiverName,omitempty"`
	ReceiverPhone   string `json:"receiverPhone,omitempty"   yaml:"receiverPhone,omitempty"`
	ReceiverAddress string `json:"receiverAddress,omitempty" yaml:"receiverAddress,omitempty"`
	Subscribed      bool   `json:"subscribed,omitempty"      yaml:"subscribed,omitempty"`
	CreateTime      int64  `json:"createTime,omitempty"      yaml:"createTime,omitempty"`
}

// TrackNode is one logistics node on a waybill's route history.
type TrackNode struct {
	ID          int64  `json:"id"                    yaml:"id"`
	WaybillCode string `json:"waybillCode"           yaml:"waybillCode"`
	Status      int    `json:"status"                yaml:"status"`
	Location    string `json:"location,omitempty"    yaml:"location,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	TrackTime   int64  `json:"trackTime"             yaml:"trackTime"`
}

// Company is a logistics company participating in the network.
type Company struct {
	ID          int64  `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Code        string `json:"code,omitempty"        yaml:"code,omitempty"`
	Logo        string `json:"logo,omitempty"        yaml:"logo,omitempty"`
	Phone       string `json:"phone,omitempty"       yaml:"phone,omitempty"`
	Address     string `json:"address,omitempty"     yaml:"address,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      int    `json:"status"                yaml:"status"`
}

// RouteInfo describes a transport line operated by a company.
type RouteInfo struct {
	ID          int64   `json:"id"                 yaml:"id"`
	CompanyID   int64   `json:"companyId"          yaml:"companyId"`
	StartPoint  string  `json:"startPoint"         yaml:"startPoint"`
	EndPoint    string  `json:"endPoint"           yaml:"endPoint"`
	Duration    string  `json:"duration,omitempty" yaml:"duration,omitempty"`
	Price       float64 `json:"price,omitempty"    yaml:"price,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Notice is a published announcement.
type Notice struct {
	ID         int64  `json:"id"                   yaml:"id"`
	CompanyID  int64  `json:"companyId,omitempty"  yaml:"companyId,omitempty"`
	Title      string `json:"title"                yaml:"title"`
	Content    string `json:"content,omitempty"    yaml:"content,omitempty"`
	Type       int    `json:"type,omitempty"       yaml:"type,omitempty"`
	Status     int    `json:"status"               yaml:"status"`
	CreateTime int64  `json:"createTime,omitempty" yaml:"createTime,omitempty"`
}

// Banner is a rotating promotional image.
type Banner struct {
	ID       int64  `json:"id"                 yaml:"id"`
	Title    string `json:"title,omitempty"    yaml:"title,omitempty"`
	PicURL   string `json:"picUrl"             yaml:"picUrl"`
	JumpURL  string `json:"jumpUrl,omitempty"  yaml:"jumpUrl,omitempty"`
	Type     string `json:"type,omitempty"     yaml:"type,omitempty"`
	Position int    `json:"position,omitempty" yaml:"position,omitempty"`
}

// AdInfo is an advertisement slot shown on the home surface.
type AdInfo struct {
	ID        int64  `json:"id"                  yaml:"id"`
	CompanyID int64  `json:"companyId,omitempty" yaml:"companyId,omitempty"`
	Title     string `json:"title,omitempty"     yaml:"title,omitempty"`
	PicURL    string `json:"picUrl"              yaml:"picUrl"`
	JumpURL   string `json:"jumpUrl,omitempty"   yaml:"jumpUrl,omitempty"`
}

// NotifyMessage is an in-app message addressed to the current user.
type NotifyMessage struct {
	ID         int64  `json:"id"                   yaml:"id"`
	Title      string `json:"title,omitempty"      yaml:"title,omitempty"`
	Content    string `json:"content"              yaml:"content"`
	Read       bool   `json:"readStatus"           yaml:"readStatus"`
	CreateTime int64  `json:"createTime,omitempty" yaml:"createTime,omitempty"`
}

// DictData is a single dictionary value resolved by type and value.
type DictData struct {
	ID       int64  `json:"id"       yaml:"id"`
	DictType string `json:"dictType" yaml:"dictType"`
	Label    string `json:"label"    yaml:"label"`
	Value    string `json:"value"    yaml:"value"`
}

// Profile carries the platform-provided user profile sent with login and
// registration exchanges.
type Profile struct {
	Nickname string `json:"nickname" yaml:"nickname"`
	Avatar   string `json:"avatar"   yaml:"avatar"`
}

// UserInfo is the authenticated user's identity as returned by the backend.
type UserInfo struct {
	UserID   int64  `json:"userId"             yaml:"userId"`
	Nickname string `json:"nickname,omitempty" yaml:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"   yaml:"avatar,omitempty"`
	Phone    string `json:"phone,omitempty"    yaml:"phone,omitempty"`
}

// Credentials holds the token pair issued by the authentication endpoints.
// An absent access token means the caller is not logged in.
type Credentials struct {
	AccessToken  string `json:"accessToken"  yaml:"accessToken"`
	RefreshToken string `json:"refreshToken" yaml:"refreshToken"`
}

// LoginStatus tags the outcome of a login or registration exchange.
type LoginStatus string

const (
	// StatusAuthenticated means credentials were issued and persisted.
	StatusAuthenticated LoginStatus = "authenticated"

	// StatusNeedsPhoneVerification means the account does not exist yet; the
	// caller must follow up with RegisterWithPhoneCode using the same login
	// attempt's open identifier.
	StatusNeedsPhoneVerification LoginStatus = "needs_phone_verification"
)

// LoginResult is the settled outcome of Login or RegisterWithPhoneCode.
type LoginResult struct {
	Status LoginStatus `json:"status"           yaml:"status"`
	OpenID string      `json:"openId,omitempty" yaml:"openId,omitempty"`
	User   *UserInfo   `json:"user,omitempty"   yaml:"user,omitempty"`
}

// RoutePageParams filters the route listing endpoint.
type RoutePageParams struct {
	CompanyID  int64
	StartPoint string
	EndPoint   string
	PageNo     int
	PageSize   int
}

// NoticePageParams filters the notice listing endpoints.
type NoticePageParams struct {
	CompanyID int64
	Status    int
	PageNo    int
	PageSize  int
}
