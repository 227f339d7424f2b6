package trakt

// Raw payload shapes as returned by the Trakt API. Every field the API may
// omit or send as null is a pointer or a string parsed later by the mapper.

type idsDTO struct {
	Trakt *int   `json:"trakt"`
	Slug  string `json:"slug"`
	IMDB  string `json:"imdb"`
	TMDB  *int   `json:"tmdb"`
	TVDB  *int   `json:"tvdb"`
}

type showDTO struct {
	Title string `json:"title"`
	Year  *int   `json:"year"`
	IDs   idsDTO `json:"ids"`
}

type movieDTO struct {
	Title string `json:"title"`
	Year  *int   `json:"year"`
	IDs   idsDTO `json:"ids"`
}

type episodeDTO struct {
	Season int    `json:"season"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	IDs    idsDTO `json:"ids"`
}

type seasonDTO struct {
	Number int    `json:"number"`
	IDs    idsDTO `json:"ids"`
}

type personDTO struct {
	Name string `json:"name"`
	IDs  idsDTO `json:"ids"`
}

type calendarEntryDTO struct {
	FirstAired string      `json:"first_aired"`
	Show       *showDTO    `json:"show"`
	Episode    *episodeDTO `json:"episode"`
}

// itemDTO is shared by watchlist entries and list items
type itemDTO struct {
	Rank     int         `json:"rank"`
	ID       int         `json:"id"`
	ListedAt string      `json:"listed_at"`
	Notes    string      `json:"notes"`
	Type     string      `json:"type"`
	Movie    *movieDTO   `json:"movie"`
	Show     *showDTO    `json:"show"`
	Season   *seasonDTO  `json:"season"`
	Episode  *episodeDTO `json:"episode"`
	Person   *personDTO  `json:"person"`
}

type listIDsDTO struct {
	Trakt *int   `json:"trakt"`
	Slug  string `json:"slug"`
}

type listUserDTO struct {
	Username string `json:"username"`
	Private  bool   `json:"private"`
	Name     string `json:"name"`
	VIP      bool   `json:"vip"`
	VIPEP    bool   `json:"vip_ep"`
	IDs      *struct {
		Slug string `json:"slug"`
	} `json:"ids"`
}

type userListDTO struct {
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Privacy        string       `json:"privacy"`
	ShareLink      string       `json:"share_link"`
	Type           string       `json:"type"`
	DisplayNumbers bool         `json:"display_numbers"`
	AllowComments  bool         `json:"allow_comments"`
	SortBy         string       `json:"sort_by"`
	SortHow        string       `json:"sort_how"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
	ItemCount      int          `json:"item_count"`
	CommentCount   int          `json:"comment_count"`
	Likes          int          `json:"likes"`
	IDs            listIDsDTO   `json:"ids"`
	User           *listUserDTO `json:"user"`
}

type savedFilterDTO struct {
	Rank      int    `json:"rank"`
	ID        int    `json:"id"`
	Section   string `json:"section"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Query     string `json:"query"`
	UpdatedAt string `json:"updated_at"`
}

type deviceCodeDTO struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURL string `json:"verification_url"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
}

type deviceTokenDTO struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
	CreatedAt    int64  `json:"created_at"`
}
