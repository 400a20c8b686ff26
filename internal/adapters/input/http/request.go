package http

type (
	// CreateSessionRequest struct - HTTP request DTO for session creation
	CreateSessionRequest struct {
		Credentials     []string `json:"credentials" validate:"required,min=1,dive,required"`
		Origin          string   `json:"origin" validate:"required,len=3,alpha"`
		FriendAirports  []string `json:"friend_airports" validate:"omitempty,dive,len=3,alpha"`
		LookbackMonths  int      `json:"lookback_months" validate:"gte=0,lte=12"`
		LookaheadMonths int      `json:"lookahead_months" validate:"gte=0,lte=12"`
		TripLengthDays  int      `json:"trip_length_days" validate:"gte=0,lte=30"`
	}

	// SearchRequest struct - HTTP request DTO for batch and streaming search
	SearchRequest struct {
		Destination *string `json:"destination" validate:"omitempty,len=3,alpha"`
		DepartDate  *string `json:"depart_date" validate:"omitempty,datetime=2006-01-02"`
		ReturnDate  *string `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
		MaxResults  int     `json:"max_results" validate:"gte=0,lte=50"`
		SkipCache   bool    `json:"skip_cache"`
	}

	// QuoteQueryRequest struct - HTTP query DTO for accumulated quote reads
	QuoteQueryRequest struct {
		Airport     *string  `query:"airport" validate:"omitempty,len=3,alpha"`
		Region      string   `query:"region"`
		MaxPrice    *float64 `query:"max_price" validate:"omitempty,gte=0"`
		Name        string   `query:"name"`
		FriendsOnly bool     `query:"friends_only"`
		Limit       int      `query:"limit" validate:"gte=0,lte=100"`
	}
)
