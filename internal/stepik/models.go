package stepik

// Course is a single record from GET /courses/{id}.
type Course struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Sections []int  `json:"sections"`
}

// Section is a single record from GET /sections/{id}.
type Section struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Units []int  `json:"units"`
}

// Unit links a section slot to the lesson it contains.
type Unit struct {
	ID     int `json:"id"`
	Lesson int `json:"lesson"`
}

// Lesson is a single record from GET /lessons/{id}.
// TimeToComplete is in seconds.
type Lesson struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	TimeToComplete int    `json:"time_to_complete"`
}

type coursesResponse struct {
	Courses []Course `json:"courses"`
}

type sectionsResponse struct {
	Sections []Section `json:"sections"`
}

type unitsResponse struct {
	Units []Unit `json:"units"`
}

type lessonsResponse struct {
	Lessons []Lesson `json:"lessons"`
}
