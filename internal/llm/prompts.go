package llm

import "fmt"

const conversionPromptTemplate = `You are an expert SQL database designer and translator. Your task is to convert the provided schema, data description, or raw SQL statements into properly formatted %[1]s SQL code.
REQUIREMENTS:
1. Detect whether the input is a schema definition, a data description in natural language, or raw SQL statements (DDL, DML, queries, functions, stored procedures, etc.).

2. For schema definitions or descriptions:
   2.1. Generate valid %[1]s DDL statements (CREATE TABLE, ALTER TABLE, etc.).
   2.2. Use appropriate data types for %[1]s, choosing from: INT/INTEGER/BIGINT/SMALLINT, VARCHAR(n), TEXT, DECIMAL(p,s), FLOAT/DOUBLE, DATE, DATETIME/TIMESTAMP, BOOLEAN/BOOL, and any dialect-specific types if needed.
   2.3. Add PRIMARY KEY, FOREIGN KEY, UNIQUE, NOT NULL, CHECK, and DEFAULT constraints where applicable.
   2.4. Assign meaningful table and column names, and include helpful inline comments.

3. For raw SQL statements (SELECT, INSERT, UPDATE, DELETE, JOINs, subqueries, stored procedures, functions, views, triggers):
   3.1. Translate syntax, functions, and built-ins into equivalent %[1]s constructs.
   3.2. Rewrite data type casts, string concatenation, date/time functions, and conditional logic to match the target dialect.
   3.3. Preserve query logic, joins, filters, grouping, ordering, and pagination semantics.
   3.4. Convert any procedural or scripting elements (e.g., T-SQL, PL/pgSQL) into the correct %[1]s procedural syntax if supported.
   3.5. If the input already closely matches %[1]s but contains errors or deprecated features, fix them and modernize to best practices.
   3.6. Ensure no errors or bugs remain in the generated SQL; validate syntax for %[1]s.
   3.7. Output only the translated SQL code, NO explanatory text, examples, or commentary. Each statement must end with a semicolon.

4. SUPPORTED DIALECTS (for %[1]s): MySQL, PostgreSQL, SQLite, MS SQL Server, Oracle, MariaDB, etc. The prompt is agnostic: choosing correct data types and syntax based solely on the %[1]s.

INSTRUCTIONS:
0. Your first line of the output should always be the SQL Dialect you are using, e.g., "MySQL", "PostgreSQL", etc in comments.
1. Identify input type (schema description vs. raw SQL).
2. Convert or correct to valid %[1]s SQL, handling both DDL and DML/procedural code as needed.
3. Use dialect-specific data types and syntax mappings.
4. Include inline comments only when defining tables or complex logic; do not add explanatory paragraphs.
5. Do not output anything except the final SQL statements.

INPUT SCHEMA/DESCRIPTION/SQL:
%[2]s
`

const suggestionsPromptTemplate = `Analyze the following SQL schema and provide improvement suggestions:

%s

Please provide:
1. Missing indexes that should be added
2. Missing constraints or relationships
3. Data type optimizations
4. Naming convention improvements
5. Performance optimization suggestions

Keep suggestions concise and practical.
`

const connectionTestPrompt = "Say 'Connection successful' if you can read this."

func conversionPrompt(targetDialect, input string) string {
	return fmt.Sprintf(conversionPromptTemplate, targetDialect, input)
}

func suggestionsPrompt(schemaText string) string {
	return fmt.Sprintf(suggestionsPromptTemplate, schemaText)
}

// ExampleSchema is a ready-made schema users can try out.
type ExampleSchema struct {
	Name string `json:"name"`
	SQL  string `json:"sql"`
}

// ExampleSchemas are exposed through the CLI and the HTTP API.
var ExampleSchemas = []ExampleSchema{
	{
		Name: "E-commerce",
		SQL: `-- E-commerce Database Schema
CREATE TABLE customers (
    customer_id INT PRIMARY KEY AUTO_INCREMENT,
    first_name VARCHAR(50) NOT NULL,
    last_name VARCHAR(50) NOT NULL,
    email VARCHAR(100) UNIQUE NOT NULL,
    phone VARCHAR(20),
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE products (
    product_id INT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(200) NOT NULL,
    description TEXT,
    price DECIMAL(10,2) NOT NULL,
    stock_quantity INT DEFAULT 0,
    category VARCHAR(50),
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE orders (
    order_id INT PRIMARY KEY AUTO_INCREMENT,
    customer_id INT NOT NULL,
    order_date DATETIME DEFAULT CURRENT_TIMESTAMP,
    total_amount DECIMAL(10,2) NOT NULL,
    status VARCHAR(20) DEFAULT 'pending'
);
`,
	},
	{
		Name: "HR Management",
		SQL: `-- HR Management System Schema
CREATE TABLE employees (
    employee_id INT PRIMARY KEY AUTO_INCREMENT,
    first_name VARCHAR(50) NOT NULL,
    last_name VARCHAR(50) NOT NULL,
    email VARCHAR(100) UNIQUE NOT NULL,
    hire_date DATE NOT NULL,
    salary DECIMAL(10,2),
    department VARCHAR(50),
    position VARCHAR(100),
    is_active BOOLEAN DEFAULT TRUE
);

CREATE TABLE departments (
    department_id INT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(100) NOT NULL,
    manager_id INT,
    budget DECIMAL(12,2),
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		Name: "Student Management",
		SQL: `-- Student Management System Schema
CREATE TABLE students (
    student_id INT PRIMARY KEY AUTO_INCREMENT,
    first_name VARCHAR(50) NOT NULL,
    last_name VARCHAR(50) NOT NULL,
    email VARCHAR(100) UNIQUE NOT NULL,
    date_of_birth DATE,
    enrollment_date DATE NOT NULL,
    gpa DECIMAL(3,2),
    is_active BOOLEAN DEFAULT TRUE
);

CREATE TABLE courses (
    course_id INT PRIMARY KEY AUTO_INCREMENT,
    course_code VARCHAR(10) UNIQUE NOT NULL,
    course_name VARCHAR(200) NOT NULL,
    credits INT NOT NULL,
    instructor VARCHAR(100),
    semester VARCHAR(20)
);
`,
	},
}
