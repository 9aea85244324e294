package render

// Indentation in these templates is a literal tab; ExpandTabs rewrites it.

const fileTemplate = `import unittest

%s
%s

if __name__ == '__main__':
	unittest.main()
`

const groupTemplate = `class %s(unittest.TestCase):
	"""
	%s
	"""
%s`

const testTemplate = `
	def %s(self):
		raise NotImplementedError()  # TODO: test %s
`

const classMethodsTemplate = `
	@classmethod
	def setUpClass(cls):
		pass

	@classmethod
	def tearDownClass(cls):
		pass
`
