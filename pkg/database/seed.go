package database

import (
	"log"

	"skillmatrix_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts a baseline dataset when the database is empty so a fresh
// install has admins, a catalog and question banks to work with.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		answerHash, err := bcrypt.GenerateFromPassword([]byte("blue"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		newUser := func(email, name string, role model.UserRole) (*model.User, error) {
			u := &model.User{
				Email:            email,
				FullName:         name,
				Role:             role,
				Password:         string(hash),
				EmailVerified:    true,
				SecurityQuestion: "What is your favorite color?",
				SecurityAnswer:   string(answerHash),
				Active:           true,
			}
			return u, tx.Create(u).Error
		}

		if _, err := newUser("admin@skillmatrix.com", "Sarah Chen", model.RoleRoot); err != nil {
			return err
		}
		if _, err := newUser("james@skillmatrix.com", "James Wilson", model.RoleTeamAdmin); err != nil {
			return err
		}
		if _, err := newUser("alex@skillmatrix.com", "Alex Johnson", model.RoleDeveloper); err != nil {
			return err
		}
		if _, err := newUser("priya@skillmatrix.com", "Priya Patel", model.RoleDeveloper); err != nil {
			return err
		}

		platform := &model.Team{Name: "Platform Engineering", Description: "Core platform and infrastructure team"}
		product := &model.Team{Name: "Product Development", Description: "Customer-facing product development"}
		if err := tx.Create(platform).Error; err != nil {
			return err
		}
		if err := tx.Create(product).Error; err != nil {
			return err
		}

		ecommerce := &model.Project{TeamID: platform.ID, Name: "E-Commerce Platform", Description: "Main e-commerce web application"}
		mobile := &model.Project{TeamID: product.ID, Name: "Mobile App", Description: "iOS and Android mobile application"}
		if err := tx.Create(ecommerce).Error; err != nil {
			return err
		}
		if err := tx.Create(mobile).Error; err != nil {
			return err
		}

		backend := &model.Component{ProjectID: ecommerce.ID, Name: "Java Backend", TechStack: "Java", Description: "Spring Boot backend services"}
		frontend := &model.Component{ProjectID: ecommerce.ID, Name: "React Frontend", TechStack: "React", Description: "React TypeScript frontend"}
		api := &model.Component{ProjectID: mobile.ID, Name: "Node.js API", TechStack: "Node.js", Description: "Mobile backend API"}
		for _, c := range []*model.Component{backend, frontend, api} {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}

		mcq := func(componentID uint, level int, text, answer string, options []string) *model.Question {
			q := &model.Question{
				ComponentID:     componentID,
				QuestionText:    text,
				Type:            model.MultipleChoice,
				DifficultyLevel: level,
				CorrectAnswer:   answer,
			}
			q.SetOptions(options)
			return q
		}
		fib := func(componentID uint, level int, text, answer string) *model.Question {
			return &model.Question{
				ComponentID:     componentID,
				QuestionText:    text,
				Type:            model.FillInBlank,
				DifficultyLevel: level,
				CorrectAnswer:   answer,
			}
		}

		questions := []*model.Question{
			mcq(backend.ID, 1, "Which keyword declares a constant reference in Java?", "final", []string{"const", "final", "static", "immutable"}),
			mcq(backend.ID, 1, "Which collection preserves insertion order?", "LinkedHashMap", []string{"HashMap", "TreeMap", "LinkedHashMap", "HashSet"}),
			fib(backend.ID, 1, "The JVM flag that sets the maximum heap size is -___.", "Xmx"),
			mcq(backend.ID, 2, "Which Spring annotation marks a transactional boundary?", "@Transactional", []string{"@Transactional", "@Atomic", "@UnitOfWork", "@Commit"}),
			mcq(backend.ID, 2, "What isolation level prevents dirty reads but allows non-repeatable reads?", "READ_COMMITTED", []string{"READ_UNCOMMITTED", "READ_COMMITTED", "REPEATABLE_READ", "SERIALIZABLE"}),
			fib(backend.ID, 2, "The Java keyword used to ensure visibility of a field across threads is ___.", "volatile"),

			mcq(frontend.ID, 1, "Which hook memoizes an expensive computation?", "useMemo", []string{"useMemo", "useEffect", "useState", "useRef"}),
			mcq(frontend.ID, 1, "What prop must list items rendered from an array carry?", "key", []string{"id", "key", "index", "ref"}),
			fib(frontend.ID, 1, "The hook used for side effects after render is use___.", "Effect"),

			mcq(api.ID, 1, "Which module implements the Node.js event loop?", "libuv", []string{"v8", "libuv", "epoll", "tokio"}),
			mcq(api.ID, 1, "What does `await` require in its enclosing function?", "async", []string{"async", "defer", "yield", "promise"}),
			fib(api.ID, 1, "The Node.js global used to schedule a callback after I/O events is setImmediate or process.___.", "nextTick"),
		}
		for _, q := range questions {
			if err := tx.Create(q).Error; err != nil {
				return err
			}
		}

		assessments := []*model.Assessment{
			{ComponentID: backend.ID, Level: 1, PassMarkPercentage: 70, NumberOfQuestions: 3},
			{ComponentID: backend.ID, Level: 2, PassMarkPercentage: 70, NumberOfQuestions: 3},
			{ComponentID: frontend.ID, Level: 1, PassMarkPercentage: 70, NumberOfQuestions: 3},
			{ComponentID: api.ID, Level: 1, PassMarkPercentage: 60, NumberOfQuestions: 3},
		}
		for _, a := range assessments {
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		}

		log.Println("Baseline data seeded")
		return nil
	})
}
