package model

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// swagger:model LearningPath
type LearningPath struct {
	BaseModel
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Courses     []Course `gorm:"foreignKey:LearningPathID" json:"courses,omitempty"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// swagger:model Course
type Course struct {
	BaseModel
	Title          string        `gorm:"size:255;not null" json:"title"`
	Description    string        `gorm:"type:text" json:"description"`
	Difficulty     Difficulty    `gorm:"type:varchar(20);not null;default:'Beginner'" json:"difficulty"`
	DurationHours  float64       `gorm:"default:0" json:"durationHours"`
	LearningPathID *uint         `gorm:"index" json:"learningPathId"`
	PathOrder      int           `gorm:"default:0" json:"pathOrder"` // 在学习路径中的顺序
	LearningPath   *LearningPath `gorm:"foreignKey:LearningPathID" json:"learningPath,omitempty"`
	Sections       []Section     `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CoursePrerequisite 课程先修关系，Position 保持先修列表的顺序
type CoursePrerequisite struct {
	ID             uint `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID       uint `gorm:"uniqueIndex:idx_course_prereq;not null" json:"courseId"`
	PrerequisiteID uint `gorm:"uniqueIndex:idx_course_prereq;not null" json:"prerequisiteId"`
	Position       int  `gorm:"default:0" json:"position"`
}

func (CoursePrerequisite) TableName() string {
	return "course_prerequisites"
}

type Section struct {
	BaseModel
	CourseID uint     `gorm:"index;not null" json:"courseId"`
	Title    string   `gorm:"size:255;not null" json:"title"`
	Order    int      `gorm:"default:0" json:"order"`
	Lessons  []Lesson `gorm:"foreignKey:SectionID" json:"lessons,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}

type Lesson struct {
	BaseModel
	SectionID uint   `gorm:"index;not null" json:"sectionId"`
	CourseID  uint   `gorm:"index;not null" json:"courseId"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Order     int    `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
