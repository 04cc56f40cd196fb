package dynalist

// envelope holds the fields every Dynalist response carries. Code is a
// pointer so a missing tag can be told apart from an empty one.
type envelope struct {
	Code    *string `json:"_code"`
	Message string  `json:"_msg"`
}

type authRequest struct {
	Token string `json:"token"`
}

type inboxAddRequest struct {
	Token   string `json:"token"`
	Content string `json:"content"`
	Note    string `json:"note,omitempty"`
}

type docEditRequest struct {
	Token   string         `json:"token"`
	FileID  string         `json:"file_id"`
	Changes []insertChange `json:"changes"`
}

type insertChange struct {
	Action   string `json:"action"`
	ParentID string `json:"parent_id"`
	Content  string `json:"content"`
	Note     string `json:"note,omitempty"`
	Index    int    `json:"index"`
}

type docReadRequest struct {
	Token  string `json:"token"`
	FileID string `json:"file_id"`
}

type versionsRequest struct {
	Token   string   `json:"token"`
	FileIDs []string `json:"file_ids"`
}

type fileListResponse struct {
	RootFileID string     `json:"root_file_id"`
	Files      []fileJSON `json:"files"`
}

type fileJSON struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Permission int      `json:"permission"`
	Children   []string `json:"children,omitempty"`
}

type docReadResponse struct {
	FileID  string     `json:"file_id"`
	Title   string     `json:"title"`
	Version int64      `json:"version"`
	Nodes   []nodeJSON `json:"nodes"`
}

type nodeJSON struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Note      string   `json:"note"`
	Checked   bool     `json:"checked"`
	Collapsed bool     `json:"collapsed"`
	Parent    string   `json:"parent"`
	Children  []string `json:"children"`
}

type versionsResponse struct {
	Versions map[string]int64 `json:"versions"`
}
