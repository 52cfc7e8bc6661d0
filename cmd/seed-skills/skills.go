package main

import "github.com/fadilmartias/cv-reviewer/internal/model"

// essentialSkills targets entry-level software engineering roles. Priority runs
// from 1 (nice to have) to 10 (expected).
var essentialSkills = []model.Skill{
	{Name: "JavaScript", Category: "Programming Language", SkillURL: "https://developer.mozilla.org/en-US/docs/Learn/JavaScript", Description: "Core language of the web, frontend and backend", Priority: 10},
	{Name: "Python", Category: "Programming Language", SkillURL: "https://docs.python.org/3/tutorial/", Description: "General purpose language for services, scripting and data work", Priority: 9},
	{Name: "TypeScript", Category: "Programming Language", SkillURL: "https://www.typescriptlang.org/docs/handbook/intro.html", Description: "Typed JavaScript for larger codebases", Priority: 8},
	{Name: "Go", Category: "Programming Language", SkillURL: "https://go.dev/tour/", Description: "Compiled language for networked services and tooling", Priority: 7},
	{Name: "Java", Category: "Programming Language", SkillURL: "https://dev.java/learn/", Description: "Enterprise application development", Priority: 7},
	{Name: "React", Category: "Frontend Framework", SkillURL: "https://react.dev/learn", Description: "Component library for user interfaces", Priority: 10},
	{Name: "Next.js", Category: "Frontend Framework", SkillURL: "https://nextjs.org/learn", Description: "React framework with server rendering", Priority: 8},
	{Name: "HTML & CSS", Category: "Frontend", SkillURL: "https://web.dev/learn/html", Description: "Markup and styling fundamentals", Priority: 9},
	{Name: "Node.js", Category: "Backend", SkillURL: "https://nodejs.org/en/learn", Description: "JavaScript runtime for server-side development", Priority: 9},
	{Name: "RESTful API", Category: "Backend", SkillURL: "https://restfulapi.net/", Description: "Designing and consuming HTTP APIs", Priority: 9},
	{Name: "SQL", Category: "Database", SkillURL: "https://www.sqltutorial.org/", Description: "Querying relational databases", Priority: 9},
	{Name: "PostgreSQL", Category: "Database", SkillURL: "https://www.postgresql.org/docs/current/tutorial.html", Description: "Open source relational database", Priority: 8},
	{Name: "MongoDB", Category: "Database", SkillURL: "https://learn.mongodb.com/", Description: "Document database", Priority: 6},
	{Name: "Redis", Category: "Database", SkillURL: "https://redis.io/learn", Description: "In-memory store for caching and sessions", Priority: 6},
	{Name: "Git", Category: "Tools", SkillURL: "https://git-scm.com/book/en/v2", Description: "Version control and collaboration", Priority: 10},
	{Name: "Docker", Category: "DevOps", SkillURL: "https://docs.docker.com/get-started/", Description: "Packaging applications in containers", Priority: 8},
	{Name: "Linux", Category: "DevOps", SkillURL: "https://linuxjourney.com/", Description: "Working on the command line and servers", Priority: 7},
	{Name: "CI/CD", Category: "DevOps", SkillURL: "https://docs.github.com/en/actions/learn-github-actions", Description: "Automated build, test and deployment", Priority: 6},
	{Name: "AWS", Category: "Cloud", SkillURL: "https://aws.amazon.com/training/", Description: "Cloud infrastructure fundamentals", Priority: 6},
	{Name: "Unit Testing", Category: "Practices", SkillURL: "https://martinfowler.com/bliki/UnitTest.html", Description: "Writing automated tests for code", Priority: 8},
	{Name: "Data Structures & Algorithms", Category: "Fundamentals", SkillURL: "https://www.coursera.org/specializations/algorithms", Description: "Problem solving fundamentals asked in interviews", Priority: 9},
	{Name: "Agile", Category: "Practices", SkillURL: "https://www.atlassian.com/agile", Description: "Iterative team workflow", Priority: 5},
}
