package accounts

// Account disagrees with itself about the external name of id.
//
//codec:value
type Account struct {
	id string `json:"account_id"`
}

//codec:name id
func (a Account) GetId() string { return a.id } // want `Account: duplicate serialize name "id" found on getter GetId \(already named "account_id"\)`

//codec:value
type Profile struct {
	tags []string `json:"tags,omitempty"`
}

//codec:token omitempty
func (p Profile) GetTags() []string { return p.tags } // want `Profile: duplicate metadata token "omitempty" found on getter GetTags`

func (p Profile) CopyTo(into *Profile) { *into = p }

//codec:builder // want `directive codec:builder has no effect on methods`
func (p Profile) Reset() { p.tags = nil }

//codec:constructor
func Count() int { return 0 } // want `constructor Count must return a single local struct type or pointer to one`

//codec:contructor // want `unknown directive codec:contructor; did you mean constructor\?`
func NewProfile() Profile { return Profile{} }

//codec:value
type Tagged struct {
	//codec:name label // want `directive codec:name has no effect on struct fields; use a json tag`
	Label string
}
