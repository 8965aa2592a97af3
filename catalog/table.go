package catalog

import "github.com/careercompass/compass/core"

// builtinCourses is the fallback catalog used when no feed is configured.
// Skills are hand-tagged with the shared vocabulary tokens so the matcher
// sees the same terms on both sides.
var builtinCourses = []core.Course{
	{Prefix: "BUAN", Number: 6320, Title: "Database Foundations for Business Analytics",
		Description: "Relational modeling, SQL for analytics, data warehouse design.",
		Skills:      []string{"SQL", "Data Warehouse", "Data Analysis"}, Level: core.LevelGraduate},
	{Prefix: "BUAN", Number: 6340, Title: "Programming for Data Science",
		Description: "Python programming, Pandas and NumPy for data manipulation.",
		Skills:      []string{"Python", "Pandas", "NumPy", "Data Analysis"}, Level: core.LevelGraduate},
	{Prefix: "BUAN", Number: 6356, Title: "Business Analytics with R",
		Description: "Regression and classification models in R applied to business data.",
		Skills:      []string{"R", "Regression", "Classification", "Statistics"}, Level: core.LevelGraduate},
	{Prefix: "BUAN", Number: 6385, Title: "Machine Learning for Business Applications",
		Description: "Supervised and unsupervised machine learning with Scikit-learn.",
		Skills:      []string{"Machine Learning", "Python", "Scikit-learn", "Clustering"}, Level: core.LevelGraduate},
	{Prefix: "MIS", Number: 6309, Title: "Business Data Warehousing",
		Description: "ETL pipelines, dimensional modeling and warehouse operations.",
		Skills:      []string{"ETL", "Data Warehouse", "SQL", "Data Pipeline"}, Level: core.LevelGraduate},
	{Prefix: "MIS", Number: 6326, Title: "Cloud Computing Fundamentals",
		Description: "AWS services, serverless architectures and cloud deployment.",
		Skills:      []string{"AWS", "Cloud Computing", "Serverless"}, Level: core.LevelGraduate},
	{Prefix: "OPRE", Number: 6301, Title: "Statistics and Data Analysis",
		Description: "Probability, statistical inference and hypothesis testing.",
		Skills:      []string{"Statistics", "Statistical Analysis", "Data Analysis"}, Level: core.LevelGraduate},
	{Prefix: "OPRE", Number: 6366, Title: "Supply Chain Analytics",
		Description: "Optimization and analytics for supply chain decisions.",
		Skills:      []string{"Data Analysis", "Statistics"}, Level: core.LevelGraduate},
	{Prefix: "CS", Number: 6313, Title: "Statistical Methods for Data Science",
		Description: "Statistical modeling in R, regression and experimental design.",
		Skills:      []string{"Statistics", "R", "Data Analysis", "Regression"}, Level: core.LevelGraduate},
	{Prefix: "CS", Number: 6375, Title: "Machine Learning",
		Description: "Learning theory, neural networks, deep learning foundations.",
		Skills:      []string{"Machine Learning", "Deep Learning", "Python"}, Level: core.LevelGraduate},
	{Prefix: "CS", Number: 6350, Title: "Big Data Management and Analytics",
		Description: "Hadoop, Spark and large-scale data processing.",
		Skills:      []string{"Big Data", "Hadoop", "Spark", "Data Engineering"}, Level: core.LevelGraduate},
	{Prefix: "STAT", Number: 6337, Title: "Advanced Statistical Methods",
		Description: "Multivariate statistics and computational inference.",
		Skills:      []string{"Statistics", "Statistical Analysis", "R"}, Level: core.LevelGraduate},
	{Prefix: "CS", Number: 4375, Title: "Introduction to Machine Learning",
		Description: "Core machine learning algorithms in Python.",
		Skills:      []string{"Machine Learning", "Python", "Classification"}, Level: core.LevelUndergraduate},
	{Prefix: "CS", Number: 4347, Title: "Database Systems",
		Description: "Relational databases, SQL and transaction processing.",
		Skills:      []string{"SQL", "Data Analysis"}, Level: core.LevelUndergraduate},
	{Prefix: "STAT", Number: 4355, Title: "Applied Linear Models",
		Description: "Regression analysis and applied statistics in R.",
		Skills:      []string{"Regression", "Statistics", "R"}, Level: core.LevelUndergraduate},
	{Prefix: "MIS", Number: 4322, Title: "Business Intelligence Systems",
		Description: "Dashboards and reporting with Tableau and Power BI.",
		Skills:      []string{"Tableau", "Power BI", "Data Visualization"}, Level: core.LevelUndergraduate},
	{Prefix: "BUAN", Number: 4310, Title: "Introduction to Business Analytics",
		Description: "Spreadsheet modeling, data visualization and basic SQL.",
		Skills:      []string{"Data Visualization", "SQL", "Data Analysis"}, Level: core.LevelUndergraduate},
	{Prefix: "SE", Number: 4352, Title: "Software Architecture and Design",
		Description: "Design patterns, CI/CD practice and agile delivery.",
		Skills:      []string{"CI/CD", "Agile", "Git"}, Level: core.LevelUndergraduate},
}
